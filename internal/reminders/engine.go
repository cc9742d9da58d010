package reminders

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"medreminder-server/internal/models"
	"medreminder-server/internal/repository"
)

// Engine owns the reminder state machine: it decides, once per evaluation
// cycle, which of a patient's reminders require a status transition or a
// user-facing notification, performs the transition, and emits the chat
// side effect at most once per transition. The engine holds no durable
// state of its own; every cycle re-derives its working set from storage.
type Engine struct {
	reminders repository.ReminderRepository
	chat      repository.ChatRepository
	cues      *CueSet
	now       func() time.Time
	window    time.Duration // auto-send lookahead, Pending becomes Sent inside it
	lookahead time.Duration // upcoming-feed horizon
	log       *zap.Logger
}

// NewEngine creates an Engine with the given collaborators and tunables.
func NewEngine(reminderRepo repository.ReminderRepository, chatRepo repository.ChatRepository, window, lookahead time.Duration, log *zap.Logger) *Engine {
	return &Engine{
		reminders: reminderRepo,
		chat:      chatRepo,
		cues:      NewCueSet(0),
		now:       time.Now,
		window:    window,
		lookahead: lookahead,
		log:       log,
	}
}

// Evaluation is the outcome of one evaluate-and-advance cycle.
type Evaluation struct {
	// Upcoming holds the reminders the notification surface should show:
	// those that were Pending within the lookahead horizon at the start
	// of the cycle, with any transitions from this cycle applied.
	Upcoming []models.Reminder `json:"upcoming"`
	// Advanced holds the reminders newly transitioned to Sent this cycle.
	Advanced []models.Reminder `json:"advanced"`
	// CuedIDs lists reminder IDs that have not triggered an audio/visual
	// cue yet this session. Callers cue exactly these.
	CuedIDs []string `json:"cuedIds"`
}

// startOfDay truncates t to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FetchReminders returns the patient's reminders. With a day filter the
// result is restricted to that calendar day; otherwise it defaults to
// today and later. Ordered by scheduled instant ascending; an empty
// result is not an error.
func (e *Engine) FetchReminders(ctx context.Context, patientID string, day *time.Time) ([]models.Reminder, error) {
	if day != nil {
		from := startOfDay(*day)
		to := from.AddDate(0, 0, 1)
		return e.reminders.ListInRange(ctx, patientID, from, &to)
	}
	return e.reminders.ListInRange(ctx, patientID, startOfDay(e.now()), nil)
}

// FetchUpcoming returns the patient's Pending reminders scheduled between
// now and now plus the lookahead horizon. Drives the floating
// notification surface.
func (e *Engine) FetchUpcoming(ctx context.Context, patientID string) ([]models.Reminder, error) {
	all, err := e.FetchReminders(ctx, patientID, nil)
	if err != nil {
		return nil, err
	}
	now := e.now()
	horizon := now.Add(e.lookahead)
	var upcoming []models.Reminder
	for _, r := range all {
		if r.Status != models.ReminderStatusPending {
			continue
		}
		if r.RemindAt.Before(now) || r.RemindAt.After(horizon) {
			continue
		}
		upcoming = append(upcoming, r)
	}
	return upcoming, nil
}

// EvaluateAndAdvance runs one evaluation cycle for the patient: every
// Pending reminder whose scheduled instant is less than the auto-send
// window away (including already-past instants) transitions to Sent and
// emits a chat message. Re-running the cycle never re-advances a
// reminder already at Sent or later, and the session-local cue set keeps
// the audio/visual cue from repeating.
func (e *Engine) EvaluateAndAdvance(ctx context.Context, patientID string) (*Evaluation, error) {
	all, err := e.FetchReminders(ctx, patientID, nil)
	if err != nil {
		return nil, err
	}

	now := e.now()
	horizon := now.Add(e.lookahead)
	eval := &Evaluation{}

	for i := range all {
		r := &all[i]

		pendingUpcoming := r.Status == models.ReminderStatusPending &&
			!r.RemindAt.Before(now) && !r.RemindAt.After(horizon)

		advanced := false
		if r.Status == models.ReminderStatusPending && r.RemindAt.Sub(now) < e.window {
			if err := e.reminders.UpdateStatus(ctx, r.ID, models.ReminderStatusSent); err != nil {
				e.log.Warn("failed to advance reminder to Sent",
					zap.String("reminderId", r.ID),
					zap.Error(err))
				continue
			}
			r.Status = models.ReminderStatusSent
			advanced = true
			eval.Advanced = append(eval.Advanced, *r)
			e.emitReminderMessage(ctx, r)
		}

		// The surface shows what was Pending in the horizon at cycle
		// start, with any transition from this cycle applied.
		if pendingUpcoming || advanced {
			eval.Upcoming = append(eval.Upcoming, *r)
			if e.cues.Add(r.ID) {
				eval.CuedIDs = append(eval.CuedIDs, r.ID)
			}
		}
	}

	return eval, nil
}

// emitReminderMessage appends the assistant-authored reminder message to
// the chat transcript. Best effort: a failure here never rolls back the
// status transition.
func (e *Engine) emitReminderMessage(ctx context.Context, r *models.Reminder) {
	message := &models.ChatMessage{
		PatientID: r.PatientID,
		Content:   formatReminderMessage(r),
		Sender:    models.SenderBot,
		Intent:    models.IntentMedicationReminder,
	}
	if err := e.chat.Append(ctx, message); err != nil {
		e.log.Warn("failed to append reminder chat message",
			zap.String("reminderId", r.ID),
			zap.String("patientId", r.PatientID),
			zap.Error(err))
	}
}

func formatReminderMessage(r *models.Reminder) string {
	msg := fmt.Sprintf("🔔 Medication Reminder:\n\nIt's time to take your %s (%s).\n\n",
		r.MedicineName(), r.Dosage())
	if r.Instructions() != "" {
		msg += fmt.Sprintf("Instructions: %s\n\n", r.Instructions())
	}
	msg += "Please remember to take your medication as prescribed. If you have any questions or concerns, feel free to ask me!"
	return msg
}

// Get returns a single reminder by ID.
func (e *Engine) Get(ctx context.Context, reminderID string) (*models.Reminder, error) {
	return e.reminders.GetByID(ctx, reminderID)
}

// UpdateStatus applies a patient- or caller-requested status transition
// after checking it is legal under the forward-only state machine.
// Terminal transitions evict the reminder from the session cue set.
func (e *Engine) UpdateStatus(ctx context.Context, reminderID string, status models.ReminderStatus) (*models.Reminder, error) {
	if !status.IsValid() {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid reminder status %q", status)}
	}
	reminder, err := e.reminders.GetByID(ctx, reminderID)
	if err != nil {
		return nil, err
	}
	if !reminder.Status.CanTransition(status) {
		return nil, &ValidationError{
			Message: fmt.Sprintf("illegal status transition %s -> %s", reminder.Status, status),
		}
	}
	if err := e.reminders.UpdateStatus(ctx, reminderID, status); err != nil {
		return nil, err
	}
	reminder.Status = status
	if status.IsTerminal() {
		e.cues.Evict(reminderID)
	}
	return reminder, nil
}

// Dismiss removes the reminder from the session cue set without touching
// its durable status ("Remind Later" on the notification surface).
func (e *Engine) Dismiss(reminderID string) {
	e.cues.Evict(reminderID)
}

// CreateReminder schedules a new reminder with status Pending.
func (e *Engine) CreateReminder(ctx context.Context, patientID, prescriptionID string, remindAt time.Time, notes string) (*models.Reminder, error) {
	if patientID == "" || prescriptionID == "" || remindAt.IsZero() {
		return nil, &ValidationError{Message: "patientId, prescriptionId and remindAt are required"}
	}
	reminder := &models.Reminder{
		PatientID:      patientID,
		PrescriptionID: prescriptionID,
		RemindAt:       remindAt,
		Status:         models.ReminderStatusPending,
		Notes:          notes,
	}
	if err := e.reminders.Insert(ctx, reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}

// UpdateReminder edits a reminder's scheduled instant and note. Status is
// never altered here.
func (e *Engine) UpdateReminder(ctx context.Context, reminderID string, remindAt time.Time, notes string) error {
	if reminderID == "" || remindAt.IsZero() {
		return &ValidationError{Message: "reminderId and remindAt are required"}
	}
	return e.reminders.Update(ctx, reminderID, remindAt, notes)
}

// DeleteReminder removes a reminder unconditionally, regardless of state.
func (e *Engine) DeleteReminder(ctx context.Context, reminderID string) error {
	e.cues.Evict(reminderID)
	return e.reminders.Delete(ctx, reminderID)
}
