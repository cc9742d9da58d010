package models

// SenderType identifies who authored a chat message.
type SenderType string

const (
	SenderUser SenderType = "User"
	SenderBot  SenderType = "Bot"
)

// Chat intent labels attached to persisted turns for analytics.
const (
	IntentSideEffects        = "side_effects"
	IntentMedicationSchedule = "medication_schedule"
	IntentMedicationInfo     = "medication_info"
	IntentMissedDose         = "missed_dose"
	IntentGeneralQuery       = "general_query"
	IntentMedicationReminder = "medication_reminder"
)

// ChatMessage is an append-only transcript entry for a patient's
// conversation with the assistant. Never updated or deleted.
type ChatMessage struct {
	BaseModel
	PatientID string     `gorm:"size:36;index" json:"patientId"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	Sender    SenderType `gorm:"size:10;not null" json:"sender"`
	Intent    string     `gorm:"size:50" json:"intent,omitempty"`

	// Relations
	Patient User `gorm:"foreignKey:PatientID" json:"-"`
}
