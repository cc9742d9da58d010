package handlers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"medreminder-server/internal/middleware"
	"medreminder-server/internal/models"
	"medreminder-server/internal/reminders"
	"medreminder-server/internal/utils"
)

// Reminder instants travel as ISO-8601-like local date-time strings; no
// timezone is stored, the value is treated as local wall-clock time.
var reminderTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.RFC3339,
}

func parseReminderTime(value string) (time.Time, error) {
	for _, layout := range reminderTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date-time %q, expected e.g. 2006-01-02T15:04:05", value)
}

// ReminderHandler handles reminder lifecycle requests.
type ReminderHandler struct {
	Engine *reminders.Engine
}

// NewReminderHandler creates a new ReminderHandler.
func NewReminderHandler(engine *reminders.Engine) *ReminderHandler {
	return &ReminderHandler{Engine: engine}
}

// resolvePatientID decides whose reminders the request targets: patients
// always act on their own; doctors and admins may pass ?patientId=.
func resolvePatientID(c *gin.Context) (string, bool) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return "", false
	}
	role, _ := middleware.GetUserRoleFromContext(c)

	requested := c.Query("patientId")
	if requested == "" || requested == userID {
		return userID, true
	}
	if role == models.RoleDoctor || role == models.RoleAdmin {
		return requested, true
	}
	utils.Forbidden(c, "Patients can only access their own reminders.")
	return "", false
}

// GetReminders handles fetching reminders, optionally for one calendar day.
func (h *ReminderHandler) GetReminders(c *gin.Context) {
	patientID, ok := resolvePatientID(c)
	if !ok {
		return
	}

	var day *time.Time
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
		if err != nil {
			utils.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		day = &parsed
	}

	result, err := h.Engine.FetchReminders(c.Request.Context(), patientID, day)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Success(c, "Reminders fetched successfully", result)
}

// GetUpcoming handles fetching the pending reminders due within the
// lookahead horizon, for the floating notification surface.
func (h *ReminderHandler) GetUpcoming(c *gin.Context) {
	patientID, ok := resolvePatientID(c)
	if !ok {
		return
	}

	result, err := h.Engine.FetchUpcoming(c.Request.Context(), patientID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Success(c, "Upcoming reminders fetched successfully", result)
}

// Evaluate runs one evaluate-and-advance cycle for the patient. Clients
// poll this once per minute; there is no server-side scheduler, so no
// reminder transitions while no client is polling.
func (h *ReminderHandler) Evaluate(c *gin.Context) {
	patientID, ok := resolvePatientID(c)
	if !ok {
		return
	}

	evaluation, err := h.Engine.EvaluateAndAdvance(c.Request.Context(), patientID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Success(c, "Reminders evaluated", evaluation)
}

// CreateReminderRequest represents the request body for scheduling a reminder.
type CreateReminderRequest struct {
	PatientID      string `json:"patientId" binding:"required,uuid"`
	PrescriptionID string `json:"prescriptionId" binding:"required,uuid"`
	RemindAt       string `json:"remindAt" binding:"required"`
	Notes          string `json:"notes"`
}

// CreateReminder handles scheduling a new reminder (doctor/admin).
func (h *ReminderHandler) CreateReminder(c *gin.Context) {
	var req CreateReminderRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	remindAt, err := parseReminderTime(req.RemindAt)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	reminder, err := h.Engine.CreateReminder(c.Request.Context(), req.PatientID, req.PrescriptionID, remindAt, req.Notes)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Created(c, "Reminder created successfully", reminder)
}

// UpdateReminderRequest represents the request body for editing a reminder.
type UpdateReminderRequest struct {
	RemindAt string `json:"remindAt" binding:"required"`
	Notes    string `json:"notes"`
}

// UpdateReminder handles editing a reminder's time and note (doctor/admin).
func (h *ReminderHandler) UpdateReminder(c *gin.Context) {
	reminderID := c.Param("id")

	var req UpdateReminderRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	remindAt, err := parseReminderTime(req.RemindAt)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if err := h.Engine.UpdateReminder(c.Request.Context(), reminderID, remindAt, req.Notes); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Success(c, "Reminder updated successfully", nil)
}

// UpdateStatusRequest represents the request body for a status transition.
type UpdateStatusRequest struct {
	Status models.ReminderStatus `json:"status" binding:"required,oneof=Pending Sent Acknowledged Missed"`
}

// UpdateStatus handles a requested status transition: "Taken" maps to
// Acknowledged, the dashboard's "Skip" to Missed. The engine rejects
// backward or terminal-escaping transitions.
func (h *ReminderHandler) UpdateStatus(c *gin.Context) {
	reminderID := c.Param("id")

	var req UpdateStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	role, _ := middleware.GetUserRoleFromContext(c)

	existing, err := h.Engine.Get(c.Request.Context(), reminderID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if role == models.RolePatient && existing.PatientID != userID {
		utils.Forbidden(c, "Patients can only update their own reminders.")
		return
	}

	reminder, err := h.Engine.UpdateStatus(c.Request.Context(), reminderID, req.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Success(c, "Reminder status updated successfully", reminder)
}

// Dismiss clears the reminder's session cue ("Remind Later"): the
// durable status is untouched and the reminder may cue again later.
func (h *ReminderHandler) Dismiss(c *gin.Context) {
	h.Engine.Dismiss(c.Param("id"))
	utils.Success(c, "Reminder dismissed for this session", nil)
}

// DeleteReminder handles removing a reminder unconditionally (doctor/admin).
func (h *ReminderHandler) DeleteReminder(c *gin.Context) {
	if err := h.Engine.DeleteReminder(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Reminder deleted successfully", nil)
}
