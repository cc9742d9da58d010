package chatbot

import (
	"strings"
	"testing"
	"time"

	"medreminder-server/internal/models"
)

func rxWith(name, dosage, frequency, instructions string) models.Prescription {
	return models.Prescription{
		Dosage:       dosage,
		Frequency:    frequency,
		Instructions: instructions,
		Medicine:     models.Medicine{Name: name},
	}
}

func reminderAt(hour, minute int, name, dosage string, status models.ReminderStatus) models.Reminder {
	return models.Reminder{
		RemindAt: time.Date(2024, 6, 1, hour, minute, 0, 0, time.Local),
		Status:   status,
		Prescription: models.Prescription{
			Dosage:   dosage,
			Medicine: models.Medicine{Name: name},
		},
	}
}

func TestRespondGreeting(t *testing.T) {
	reply := Respond("Hello!", Context{PatientName: "Anna"})
	if !strings.Contains(reply, "Hello Anna!") {
		t.Errorf("reply = %q, want greeting with name", reply)
	}
}

func TestRespondScheduleBeforeSideEffects(t *testing.T) {
	// Both the schedule and side-effect rules match; the schedule rule
	// is earlier in the ladder and must win.
	ctx := Context{
		PatientName: "Anna",
		Reminders: []models.Reminder{
			reminderAt(8, 0, "Metformin", "500mg", models.ReminderStatusAcknowledged),
			reminderAt(20, 0, "Metformin", "500mg", models.ReminderStatusPending),
		},
	}
	reply := Respond("What is my schedule today and what are the side effects?", ctx)
	if !strings.Contains(reply, "medication reminders for today") {
		t.Fatalf("reply = %q, want today's schedule", reply)
	}
	if !strings.Contains(reply, "✓ Taken") || !strings.Contains(reply, "Pending") {
		t.Errorf("reply = %q, want both statuses listed", reply)
	}
	if !strings.Contains(reply, "08:00 AM") || !strings.Contains(reply, "08:00 PM") {
		t.Errorf("reply = %q, want 12-hour times", reply)
	}
}

func TestRespondScheduleEmpty(t *testing.T) {
	reply := Respond("what's my schedule", Context{PatientName: "Anna"})
	if !strings.Contains(reply, "no medication reminders scheduled for today") {
		t.Errorf("reply = %q, want the no-reminders message", reply)
	}
}

func TestRespondMedicationList(t *testing.T) {
	ctx := Context{
		PatientName: "Anna",
		Prescriptions: []models.Prescription{
			rxWith("Metformin", "500mg", "Twice daily", "Take with food"),
			rxWith("Lisinopril", "10mg", "Once daily", ""),
		},
	}
	reply := Respond("list my prescriptions", ctx)
	if !strings.Contains(reply, "Metformin - 500mg, Twice daily") {
		t.Errorf("reply = %q, want prescription line", reply)
	}
	if !strings.Contains(reply, "Instructions: Take with food") {
		t.Errorf("reply = %q, want instructions for the first prescription", reply)
	}
}

func TestRespondMedicationListEmpty(t *testing.T) {
	reply := Respond("what about my medication?", Context{PatientName: "Anna"})
	// "what" alone would hit nothing earlier in the ladder; "medication"
	// reaches the list rule, which reports the empty set.
	if !strings.Contains(reply, "don't have any active prescriptions") {
		t.Errorf("reply = %q, want the no-prescriptions message", reply)
	}
}

func TestRespondMissedDose(t *testing.T) {
	reply := Respond("I forgot my dose", Context{PatientName: "Anna"})
	if !strings.Contains(reply, "Never double up on doses") {
		t.Errorf("reply = %q, want the missed-dose advisory", reply)
	}
}

func TestRespondWhenToTake(t *testing.T) {
	ctx := Context{
		PatientName: "Anna",
		Reminders: []models.Reminder{
			reminderAt(8, 0, "Metformin", "500mg", models.ReminderStatusAcknowledged),
			reminderAt(14, 30, "Lisinopril", "10mg", models.ReminderStatusPending),
		},
	}
	reply := Respond("when should I take my pills", ctx)
	if !strings.Contains(reply, "Lisinopril (10mg) at 02:30 PM") {
		t.Errorf("reply = %q, want the earliest pending reminder", reply)
	}

	// No pending reminder left: fall back to the dashboard pointer
	ctx.Reminders = []models.Reminder{
		reminderAt(8, 0, "Metformin", "500mg", models.ReminderStatusAcknowledged),
	}
	reply = Respond("when should I take my pills", ctx)
	if !strings.Contains(reply, "check your full medication schedule on the dashboard") {
		t.Errorf("reply = %q, want the dashboard fallback", reply)
	}
}

func TestRespondHelp(t *testing.T) {
	reply := Respond("help", Context{PatientName: "Anna"})
	if !strings.Contains(reply, "I can help you with") {
		t.Errorf("reply = %q, want the capability summary", reply)
	}
}

func TestRespondDefaultEchoesName(t *testing.T) {
	reply := Respond("xyzzy", Context{PatientName: "Anna"})
	if !strings.Contains(reply, "Anna, I'm here to help with your medications") {
		t.Errorf("reply = %q, want the default reply with the patient's name", reply)
	}
}

func TestRespondMissingNameFallsBackToThere(t *testing.T) {
	reply := Respond("hello", Context{})
	if !strings.Contains(reply, "Hello there!") {
		t.Errorf("reply = %q, want the 'there' fallback", reply)
	}
}

func TestDetectIntent(t *testing.T) {
	cases := []struct {
		message string
		want    string
	}{
		{"I have a side effect", models.IntentSideEffects},
		{"I feel dizzy", models.IntentSideEffects},
		{"is this a bad reaction?", models.IntentSideEffects},
		{"when do I take it", models.IntentMedicationSchedule},
		{"what time is my dose", models.IntentMedicationSchedule},
		{"show my schedule", models.IntentMedicationSchedule},
		{"what is Metformin", models.IntentMedicationInfo},
		{"tell me about my pills", models.IntentMedicationInfo},
		{"I forgot my dose", models.IntentMissedDose},
		{"I missed this morning", models.IntentMissedDose},
		{"hello", models.IntentGeneralQuery},
		// "feel" outranks "time": the side-effect rung comes first
		{"I feel odd every time", models.IntentSideEffects},
	}

	for _, tc := range cases {
		if got := DetectIntent(tc.message); got != tc.want {
			t.Errorf("DetectIntent(%q) = %s, want %s", tc.message, got, tc.want)
		}
	}
}
