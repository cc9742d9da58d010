package models

import (
	"time"
)

// Prescription links a patient, a doctor and a medicine with dosage and schedule.
type Prescription struct {
	BaseModel
	PatientID    string     `gorm:"size:36;index" json:"patientId"`
	DoctorID     string     `gorm:"size:36;index" json:"doctorId"`
	MedicineID   string     `gorm:"size:36;index" json:"medicineId"`
	Dosage       string     `gorm:"size:100;not null" json:"dosage"`
	Frequency    string     `gorm:"size:100;not null" json:"frequency"`
	Instructions string     `gorm:"type:text" json:"instructions,omitempty"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      *time.Time `json:"endDate,omitempty"` // nil means ongoing

	// Relations
	Patient  User     `gorm:"foreignKey:PatientID" json:"-"`
	Doctor   User     `gorm:"foreignKey:DoctorID" json:"-"`
	Medicine Medicine `gorm:"foreignKey:MedicineID" json:"medicine"`

	// Reminders are owned by the prescription; deleting it removes them.
	Reminders []Reminder `gorm:"foreignKey:PrescriptionID;constraint:OnDelete:CASCADE" json:"-"`
}

// IsActive reports whether the prescription is active on the given day.
// A prescription is active iff its end date is unset or not before that day.
func (p *Prescription) IsActive(on time.Time) bool {
	if p.EndDate == nil {
		return true
	}
	day := time.Date(on.Year(), on.Month(), on.Day(), 0, 0, 0, 0, on.Location())
	return !p.EndDate.Before(day)
}
