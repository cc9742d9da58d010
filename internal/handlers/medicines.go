package handlers

import (
	"github.com/gin-gonic/gin"

	"medreminder-server/internal/models"
	"medreminder-server/internal/repository"
	"medreminder-server/internal/utils"
)

// MedicineHandler handles medicine catalog requests.
type MedicineHandler struct {
	Medicines repository.MedicineRepository
}

// NewMedicineHandler creates a new MedicineHandler.
func NewMedicineHandler(medicines repository.MedicineRepository) *MedicineHandler {
	return &MedicineHandler{Medicines: medicines}
}

// GetMedicines handles fetching the medicine catalog.
func (h *MedicineHandler) GetMedicines(c *gin.Context) {
	result, err := h.Medicines.List(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Medicines fetched successfully", result)
}

// GetMedicineByID handles fetching a single catalog entry.
func (h *MedicineHandler) GetMedicineByID(c *gin.Context) {
	medicine, err := h.Medicines.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Medicine fetched successfully", medicine)
}

// CreateMedicineRequest represents the request body for adding a medicine.
type CreateMedicineRequest struct {
	Name         string `json:"name" binding:"required"`
	Type         string `json:"type"`
	Dosage       string `json:"dosage" binding:"required"`
	SideEffects  string `json:"sideEffects"`
	Instructions string `json:"instructions"`
}

// CreateMedicine handles adding a medicine to the catalog (doctor/admin).
func (h *MedicineHandler) CreateMedicine(c *gin.Context) {
	var req CreateMedicineRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	medicine := models.Medicine{
		Name:         req.Name,
		Type:         req.Type,
		Dosage:       req.Dosage,
		SideEffects:  req.SideEffects,
		Instructions: req.Instructions,
	}

	if err := h.Medicines.Insert(c.Request.Context(), &medicine); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Created(c, "Medicine created successfully", medicine)
}
