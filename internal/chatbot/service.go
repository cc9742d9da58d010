package chatbot

import (
	"context"
	"time"

	"go.uber.org/zap"

	"medreminder-server/internal/models"
	"medreminder-server/internal/repository"
)

// Service answers patient messages from their medication context and
// persists both sides of the conversation with a detected intent label.
type Service struct {
	chat          repository.ChatRepository
	prescriptions repository.PrescriptionRepository
	reminders     repository.ReminderRepository
	now           func() time.Time
	log           *zap.Logger
}

// NewService creates a chatbot Service.
func NewService(chatRepo repository.ChatRepository, prescriptionRepo repository.PrescriptionRepository, reminderRepo repository.ReminderRepository, log *zap.Logger) *Service {
	return &Service{
		chat:          chatRepo,
		prescriptions: prescriptionRepo,
		reminders:     reminderRepo,
		now:           time.Now,
		log:           log,
	}
}

// HandleMessage builds the patient's medication context, generates the
// reply and appends both turns to the transcript. Transcript persistence
// is non-fatal to the conversation: the reply is returned even when the
// writes fail.
func (s *Service) HandleMessage(ctx context.Context, patientID, patientName, messageText string) (reply string, intent string, err error) {
	now := s.now()

	active, err := s.prescriptions.ListForPatient(ctx, patientID, &now)
	if err != nil {
		return "", "", err
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	todays, err := s.reminders.ListInRange(ctx, patientID, dayStart, &dayEnd)
	if err != nil {
		return "", "", err
	}

	reply = Respond(messageText, Context{
		PatientName:   patientName,
		Prescriptions: active,
		Reminders:     todays,
	})
	intent = DetectIntent(messageText)

	s.persistTurn(ctx, patientID, messageText, models.SenderUser, intent)
	s.persistTurn(ctx, patientID, reply, models.SenderBot, intent)

	return reply, intent, nil
}

// Transcript returns the patient's chat history, oldest first.
func (s *Service) Transcript(ctx context.Context, patientID string) ([]models.ChatMessage, error) {
	return s.chat.ListForPatient(ctx, patientID)
}

// Append adds an externally authored message to the transcript.
func (s *Service) Append(ctx context.Context, message *models.ChatMessage) error {
	return s.chat.Append(ctx, message)
}

func (s *Service) persistTurn(ctx context.Context, patientID, content string, sender models.SenderType, intent string) {
	message := &models.ChatMessage{
		PatientID: patientID,
		Content:   content,
		Sender:    sender,
		Intent:    intent,
	}
	if err := s.chat.Append(ctx, message); err != nil {
		s.log.Warn("failed to persist chat turn",
			zap.String("patientId", patientID),
			zap.String("sender", string(sender)),
			zap.Error(err))
	}
}
