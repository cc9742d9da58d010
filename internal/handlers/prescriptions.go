package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"medreminder-server/internal/middleware"
	"medreminder-server/internal/models"
	"medreminder-server/internal/repository"
	"medreminder-server/internal/utils"
)

// PrescriptionHandler handles prescription related requests.
type PrescriptionHandler struct {
	Prescriptions repository.PrescriptionRepository
	Medicines     repository.MedicineRepository
}

// NewPrescriptionHandler creates a new PrescriptionHandler.
func NewPrescriptionHandler(prescriptions repository.PrescriptionRepository, medicines repository.MedicineRepository) *PrescriptionHandler {
	return &PrescriptionHandler{Prescriptions: prescriptions, Medicines: medicines}
}

// GetPrescriptions handles fetching a patient's prescriptions, optionally
// restricted to those still active today.
func (h *PrescriptionHandler) GetPrescriptions(c *gin.Context) {
	patientID, ok := resolvePatientID(c)
	if !ok {
		return
	}

	var activeOn *time.Time
	if c.Query("activeOnly") == "true" {
		now := time.Now()
		activeOn = &now
	}

	result, err := h.Prescriptions.ListForPatient(c.Request.Context(), patientID, activeOn)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Success(c, "Prescriptions fetched successfully", result)
}

// CreatePrescriptionRequest represents the request body for creating a prescription.
type CreatePrescriptionRequest struct {
	PatientID    string `json:"patientId" binding:"required,uuid"`
	MedicineID   string `json:"medicineId" binding:"required,uuid"`
	Dosage       string `json:"dosage" binding:"required"`
	Frequency    string `json:"frequency" binding:"required"`
	StartDate    string `json:"startDate" binding:"required"`
	EndDate      string `json:"endDate"`
	Instructions string `json:"instructions"`
}

// CreatePrescription handles creating a new prescription (doctor/admin).
// The issuing doctor is the authenticated user.
func (h *PrescriptionHandler) CreatePrescription(c *gin.Context) {
	var req CreatePrescriptionRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	doctorID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	startDate, err := time.ParseInLocation("2006-01-02", req.StartDate, time.Local)
	if err != nil {
		utils.BadRequest(c, "Invalid startDate, expected YYYY-MM-DD")
		return
	}

	var endDate *time.Time
	if req.EndDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", req.EndDate, time.Local)
		if err != nil {
			utils.BadRequest(c, "Invalid endDate, expected YYYY-MM-DD")
			return
		}
		endDate = &parsed
	}

	// Verify the medicine exists before linking to it
	if _, err := h.Medicines.GetByID(c.Request.Context(), req.MedicineID); err != nil {
		utils.RespondError(c, err)
		return
	}

	prescription := models.Prescription{
		PatientID:    req.PatientID,
		DoctorID:     doctorID,
		MedicineID:   req.MedicineID,
		Dosage:       req.Dosage,
		Frequency:    req.Frequency,
		Instructions: req.Instructions,
		StartDate:    startDate,
		EndDate:      endDate,
	}

	if err := h.Prescriptions.Insert(c.Request.Context(), &prescription); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Created(c, "Prescription created successfully", prescription)
}

// DeletePrescription handles removing a prescription. Its reminders are
// removed with it; a reminder never outlives its prescription.
func (h *PrescriptionHandler) DeletePrescription(c *gin.Context) {
	prescriptionID := c.Param("id")

	if _, err := h.Prescriptions.GetByID(c.Request.Context(), prescriptionID); err != nil {
		utils.RespondError(c, err)
		return
	}

	if err := h.Prescriptions.Delete(c.Request.Context(), prescriptionID); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Success(c, "Prescription deleted successfully", nil)
}
