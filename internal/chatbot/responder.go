package chatbot

import (
	"fmt"
	"strings"

	"medreminder-server/internal/models"
)

// Context carries the patient's medication state the responder answers
// from. Prescriptions should be the active set, reminders today's set.
type Context struct {
	PatientName   string
	Prescriptions []models.Prescription
	Reminders     []models.Reminder
}

// Respond maps free-text patient input to a reply using an ordered list
// of trigger phrases. Matching is case-insensitive substring matching and
// the first matching rule wins, so rule order is significant. Pure and
// deterministic: no external calls, no state.
func Respond(messageText string, ctx Context) string {
	message := strings.ToLower(messageText)
	name := ctx.PatientName
	if name == "" {
		name = "there"
	}

	// Greeting
	if strings.Contains(message, "hello") || strings.Contains(message, "hi") {
		return fmt.Sprintf("Hello %s! I'm here to help you with your medications. You can ask me about your schedule, prescriptions, or any concerns you have.", name)
	}

	// Today's schedule
	if strings.Contains(message, "today") || strings.Contains(message, "schedule") {
		if len(ctx.Reminders) == 0 {
			return fmt.Sprintf("Hi %s! You have no medication reminders scheduled for today. If you think this is incorrect, please check with your doctor.", name)
		}
		var b strings.Builder
		b.WriteString("Here are your medication reminders for today:\n\n")
		for _, r := range ctx.Reminders {
			status := "Pending"
			if r.Status == models.ReminderStatusAcknowledged {
				status = "✓ Taken"
			}
			fmt.Fprintf(&b, "• %s - %s (%s) - %s\n",
				r.RemindAt.Format("03:04 PM"), r.MedicineName(), r.Dosage(), status)
		}
		return b.String()
	}

	// List all medications
	if strings.Contains(message, "medication") || strings.Contains(message, "prescription") {
		if len(ctx.Prescriptions) == 0 {
			return fmt.Sprintf("%s, you don't have any active prescriptions in the system. Please contact your doctor if you believe this is incorrect.", name)
		}
		var b strings.Builder
		b.WriteString("Your current medications:\n\n")
		for _, p := range ctx.Prescriptions {
			fmt.Fprintf(&b, "• %s - %s, %s\n", p.Medicine.Name, p.Dosage, p.Frequency)
			if p.Instructions != "" {
				fmt.Fprintf(&b, "  Instructions: %s\n", p.Instructions)
			}
		}
		return b.String()
	}

	// Side effects inquiry
	if strings.Contains(message, "side effect") || strings.Contains(message, "feel") {
		return fmt.Sprintf("%s, if you're experiencing side effects from your medication, please note the symptoms and contact your doctor immediately. Common side effects include nausea, dizziness, or drowsiness, but any unusual reactions should be reported. Would you like me to provide information about a specific medication?", name)
	}

	// Missed dose
	if strings.Contains(message, "forgot") || strings.Contains(message, "missed") {
		return fmt.Sprintf("%s, if you missed a dose, take it as soon as you remember unless it's almost time for your next dose. Never double up on doses. If you're unsure, please call your doctor or pharmacist for guidance.", name)
	}

	// When to take medication
	if strings.Contains(message, "when") && strings.Contains(message, "take") {
		for _, r := range ctx.Reminders {
			if r.Status == models.ReminderStatusPending {
				return fmt.Sprintf("Your next medication is %s (%s) at %s today.",
					r.MedicineName(), r.Dosage(), r.RemindAt.Format("03:04 PM"))
			}
		}
		return "You can check your full medication schedule on the dashboard. I'll send you reminders when it's time to take your medications."
	}

	// Help/How
	if strings.Contains(message, "help") || strings.Contains(message, "how") {
		return "I can help you with:\n\n• Checking your medication schedule\n• Information about your prescriptions\n• Reminders for when to take medications\n• Guidance on side effects or missed doses\n\nJust ask me anything about your medications!"
	}

	// Default response
	return fmt.Sprintf("%s, I'm here to help with your medications. You can ask me about your schedule, prescriptions, side effects, or anything else medication-related. What would you like to know?", name)
}

// DetectIntent classifies a chat turn for audit/analytics. It uses its
// own ordered substring ladder, independent of the reply rules.
func DetectIntent(messageText string) string {
	message := strings.ToLower(messageText)

	if strings.Contains(message, "side effect") ||
		strings.Contains(message, "reaction") ||
		strings.Contains(message, "feel") {
		return models.IntentSideEffects
	}

	if strings.Contains(message, "when") ||
		strings.Contains(message, "time") ||
		strings.Contains(message, "schedule") {
		return models.IntentMedicationSchedule
	}

	if strings.Contains(message, "what") || strings.Contains(message, "tell me about") {
		return models.IntentMedicationInfo
	}

	if strings.Contains(message, "forgot") || strings.Contains(message, "missed") {
		return models.IntentMissedDose
	}

	return models.IntentGeneralQuery
}
