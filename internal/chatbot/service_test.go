package chatbot

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"medreminder-server/internal/models"
)

type fakeChatRepo struct {
	messages   []models.ChatMessage
	failAppend bool
}

func (f *fakeChatRepo) Append(_ context.Context, m *models.ChatMessage) error {
	if f.failAppend {
		return errors.New("storage unavailable")
	}
	f.messages = append(f.messages, *m)
	return nil
}

func (f *fakeChatRepo) ListForPatient(_ context.Context, patientID string) ([]models.ChatMessage, error) {
	var result []models.ChatMessage
	for _, m := range f.messages {
		if m.PatientID == patientID {
			result = append(result, m)
		}
	}
	return result, nil
}

type fakePrescriptionRepo struct {
	prescriptions []models.Prescription
}

func (f *fakePrescriptionRepo) ListForPatient(_ context.Context, patientID string, activeOn *time.Time) ([]models.Prescription, error) {
	var result []models.Prescription
	for _, p := range f.prescriptions {
		if p.PatientID != patientID {
			continue
		}
		if activeOn != nil && !p.IsActive(*activeOn) {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

func (f *fakePrescriptionRepo) GetByID(_ context.Context, id string) (*models.Prescription, error) {
	return nil, errors.New("not implemented")
}

func (f *fakePrescriptionRepo) Insert(_ context.Context, p *models.Prescription) error {
	f.prescriptions = append(f.prescriptions, *p)
	return nil
}

func (f *fakePrescriptionRepo) Delete(_ context.Context, id string) error {
	return nil
}

type fakeReminderRepo struct {
	reminders []models.Reminder
}

func (f *fakeReminderRepo) ListInRange(_ context.Context, patientID string, from time.Time, to *time.Time) ([]models.Reminder, error) {
	var result []models.Reminder
	for _, r := range f.reminders {
		if r.PatientID != patientID || r.RemindAt.Before(from) {
			continue
		}
		if to != nil && !r.RemindAt.Before(*to) {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

func (f *fakeReminderRepo) GetByID(_ context.Context, id string) (*models.Reminder, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeReminderRepo) Insert(_ context.Context, r *models.Reminder) error { return nil }

func (f *fakeReminderRepo) UpdateStatus(_ context.Context, id string, status models.ReminderStatus) error {
	return nil
}

func (f *fakeReminderRepo) Update(_ context.Context, id string, remindAt time.Time, notes string) error {
	return nil
}

func (f *fakeReminderRepo) Delete(_ context.Context, id string) error { return nil }

func newTestService(chat *fakeChatRepo, rx *fakePrescriptionRepo, rem *fakeReminderRepo, now time.Time) *Service {
	s := NewService(chat, rx, rem, zap.NewNop())
	s.now = func() time.Time { return now }
	return s
}

func TestHandleMessagePersistsBothTurnsWithIntent(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)
	chat := &fakeChatRepo{}
	svc := newTestService(chat, &fakePrescriptionRepo{}, &fakeReminderRepo{}, now)

	reply, intent, err := svc.HandleMessage(context.Background(), "p1", "Anna", "I forgot my dose")
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if intent != models.IntentMissedDose {
		t.Errorf("intent = %s, want missed_dose", intent)
	}
	if !strings.Contains(reply, "Never double up") {
		t.Errorf("reply = %q, want missed-dose advisory", reply)
	}

	if len(chat.messages) != 2 {
		t.Fatalf("persisted %d messages, want 2", len(chat.messages))
	}
	if chat.messages[0].Sender != models.SenderUser || chat.messages[1].Sender != models.SenderBot {
		t.Errorf("turn senders = %s, %s; want User then Bot", chat.messages[0].Sender, chat.messages[1].Sender)
	}
	for _, m := range chat.messages {
		if m.Intent != models.IntentMissedDose {
			t.Errorf("turn intent = %s, want missed_dose on both turns", m.Intent)
		}
	}
}

func TestHandleMessageSurvivesTranscriptFailure(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)
	chat := &fakeChatRepo{failAppend: true}
	svc := newTestService(chat, &fakePrescriptionRepo{}, &fakeReminderRepo{}, now)

	reply, _, err := svc.HandleMessage(context.Background(), "p1", "Anna", "hello")
	if err != nil {
		t.Fatalf("HandleMessage returned error on transcript failure: %v", err)
	}
	if !strings.Contains(reply, "Hello Anna!") {
		t.Errorf("reply = %q, want the greeting despite persistence failure", reply)
	}
}

func TestHandleMessageUsesActivePrescriptionsOnly(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)
	expired := time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)
	rx := &fakePrescriptionRepo{prescriptions: []models.Prescription{
		{
			PatientID: "p1",
			Dosage:    "500mg",
			Frequency: "Twice daily",
			Medicine:  models.Medicine{Name: "Metformin"},
		},
		{
			PatientID: "p1",
			Dosage:    "10mg",
			Frequency: "Once daily",
			EndDate:   &expired,
			Medicine:  models.Medicine{Name: "Lisinopril"},
		},
	}}
	svc := newTestService(&fakeChatRepo{}, rx, &fakeReminderRepo{}, now)

	reply, _, err := svc.HandleMessage(context.Background(), "p1", "Anna", "list my medication")
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if !strings.Contains(reply, "Metformin") {
		t.Errorf("reply = %q, want the active prescription", reply)
	}
	if strings.Contains(reply, "Lisinopril") {
		t.Errorf("reply = %q, expired prescription should be excluded", reply)
	}
}

func TestHandleMessageScopesRemindersToToday(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)
	rem := &fakeReminderRepo{reminders: []models.Reminder{
		{
			PatientID: "p1",
			RemindAt:  time.Date(2024, 6, 1, 20, 0, 0, 0, time.Local),
			Status:    models.ReminderStatusPending,
			Prescription: models.Prescription{
				Dosage:   "500mg",
				Medicine: models.Medicine{Name: "Metformin"},
			},
		},
		{
			PatientID: "p1",
			RemindAt:  time.Date(2024, 6, 2, 8, 0, 0, 0, time.Local),
			Status:    models.ReminderStatusPending,
			Prescription: models.Prescription{
				Dosage:   "10mg",
				Medicine: models.Medicine{Name: "Lisinopril"},
			},
		},
	}}
	svc := newTestService(&fakeChatRepo{}, &fakePrescriptionRepo{}, rem, now)

	reply, _, err := svc.HandleMessage(context.Background(), "p1", "Anna", "what's my schedule today")
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if !strings.Contains(reply, "Metformin") {
		t.Errorf("reply = %q, want today's reminder", reply)
	}
	if strings.Contains(reply, "Lisinopril") {
		t.Errorf("reply = %q, tomorrow's reminder should be excluded", reply)
	}
}
