package models

// Medicine represents a catalog entry for a prescribable medicine.
// Never mutated by the reminder flow; referenced by prescriptions.
type Medicine struct {
	BaseModel
	Name         string `gorm:"size:255;not null;index" json:"name"`
	Type         string `gorm:"size:100" json:"type,omitempty"`
	Dosage       string `gorm:"size:100" json:"dosage"` // Standard dosage text
	SideEffects  string `gorm:"type:text" json:"sideEffects,omitempty"`
	Instructions string `gorm:"type:text" json:"instructions,omitempty"`
}
