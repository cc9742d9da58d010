package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"medreminder-server/internal/chatbot"
	"medreminder-server/internal/middleware"
	"medreminder-server/internal/models"
	"medreminder-server/internal/utils"
)

// ChatHandler handles assistant chat requests.
type ChatHandler struct {
	Service *chatbot.Service
	DB      *gorm.DB
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(service *chatbot.Service, db *gorm.DB) *ChatHandler {
	return &ChatHandler{Service: service, DB: db}
}

// ChatRequest represents the request body for a chat turn.
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// ChatResponse represents the assistant's reply to a chat turn.
type ChatResponse struct {
	Response string `json:"response"`
	Intent   string `json:"intent"`
}

// SendMessage handles one patient chat turn: it answers from the
// patient's medication context and records both sides of the exchange.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req ChatRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	patientID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var user models.User
	patientName := ""
	if err := h.DB.First(&user, "id = ?", patientID).Error; err == nil {
		patientName = user.FirstName
	}

	reply, intent, err := h.Service.HandleMessage(c.Request.Context(), patientID, patientName, req.Message)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Success(c, "Message processed", ChatResponse{Response: reply, Intent: intent})
}

// GetMessages handles fetching the patient's chat transcript.
func (h *ChatHandler) GetMessages(c *gin.Context) {
	patientID, ok := resolvePatientID(c)
	if !ok {
		return
	}

	messages, err := h.Service.Transcript(c.Request.Context(), patientID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Success(c, "Messages fetched successfully", messages)
}

// AppendMessageRequest represents the request body for appending an
// externally authored transcript entry.
type AppendMessageRequest struct {
	PatientID string `json:"patientId" binding:"required,uuid"`
	Content   string `json:"content" binding:"required"`
	Sender    string `json:"sender" binding:"required,oneof=User Bot"`
	Intent    string `json:"intent"`
}

// AppendMessage handles appending a transcript entry without running the
// responder, used by notification surfaces injecting reminder messages.
func (h *ChatHandler) AppendMessage(c *gin.Context) {
	var req AppendMessageRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	role, _ := middleware.GetUserRoleFromContext(c)
	if role == models.RolePatient && req.PatientID != userID {
		utils.Forbidden(c, "Patients can only append to their own transcript.")
		return
	}

	message := &models.ChatMessage{
		PatientID: req.PatientID,
		Content:   req.Content,
		Sender:    models.SenderType(req.Sender),
		Intent:    req.Intent,
	}

	if err := h.Service.Append(c.Request.Context(), message); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Created(c, "Message appended successfully", message)
}
