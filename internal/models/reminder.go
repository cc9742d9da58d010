package models

import (
	"time"
)

// ReminderStatus represents the lifecycle status of a reminder.
// Wire values are case- and spelling-exact.
type ReminderStatus string

const (
	ReminderStatusPending      ReminderStatus = "Pending"
	ReminderStatusSent         ReminderStatus = "Sent"
	ReminderStatusAcknowledged ReminderStatus = "Acknowledged"
	ReminderStatusMissed       ReminderStatus = "Missed"
)

// statusRank orders statuses along the lifecycle. Acknowledged and Missed
// are terminal and mutually exclusive.
var statusRank = map[ReminderStatus]int{
	ReminderStatusPending:      0,
	ReminderStatusSent:         1,
	ReminderStatusAcknowledged: 2,
	ReminderStatusMissed:       2,
}

// IsValid reports whether s is one of the four known statuses.
func (s ReminderStatus) IsValid() bool {
	_, ok := statusRank[s]
	return ok
}

// IsTerminal reports whether no further transition is allowed from s.
func (s ReminderStatus) IsTerminal() bool {
	return s == ReminderStatusAcknowledged || s == ReminderStatusMissed
}

// CanTransition reports whether moving from s to next is a legal,
// forward-only step: Pending -> Sent -> {Acknowledged | Missed}, with
// Acknowledged/Missed also reachable directly from Pending.
func (s ReminderStatus) CanTransition(next ReminderStatus) bool {
	if !s.IsValid() || !next.IsValid() {
		return false
	}
	if s.IsTerminal() {
		return false
	}
	return statusRank[next] > statusRank[s]
}

// Reminder is a scheduled instruction to take a prescription's medicine
// at a specific local date/time.
type Reminder struct {
	BaseModel
	PatientID      string         `gorm:"size:36;index" json:"patientId"`
	PrescriptionID string         `gorm:"size:36;index" json:"prescriptionId"`
	RemindAt       time.Time      `gorm:"index;not null" json:"remindAt"`
	Status         ReminderStatus `gorm:"size:20;default:'Pending'" json:"status"`
	Notes          string         `gorm:"type:text" json:"notes,omitempty"`

	// Relations
	Patient      User         `gorm:"foreignKey:PatientID" json:"-"`
	Prescription Prescription `gorm:"foreignKey:PrescriptionID" json:"prescription"`
}

// MedicineName returns the name of the prescribed medicine, if preloaded.
func (r *Reminder) MedicineName() string {
	return r.Prescription.Medicine.Name
}

// Dosage returns the prescribed dosage, if preloaded.
func (r *Reminder) Dosage() string {
	return r.Prescription.Dosage
}

// Instructions returns the prescription's instructions, if preloaded.
func (r *Reminder) Instructions() string {
	return r.Prescription.Instructions
}
