package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"medreminder-server/internal/models"
)

// PrescriptionRepository is the persistence contract for prescriptions.
type PrescriptionRepository interface {
	// ListForPatient returns the patient's prescriptions, newest first.
	// When activeOn is non-nil, only prescriptions still active on that
	// day are returned (end date unset or >= that day).
	ListForPatient(ctx context.Context, patientID string, activeOn *time.Time) ([]models.Prescription, error)
	GetByID(ctx context.Context, id string) (*models.Prescription, error)
	Insert(ctx context.Context, prescription *models.Prescription) error
	// Delete removes the prescription and, through the owned-by
	// relationship, all of its reminders.
	Delete(ctx context.Context, id string) error
}

type gormPrescriptionRepo struct {
	db *gorm.DB
}

// NewPrescriptionRepository creates a gorm-backed PrescriptionRepository.
func NewPrescriptionRepository(db *gorm.DB) PrescriptionRepository {
	return &gormPrescriptionRepo{db: db}
}

func (r *gormPrescriptionRepo) ListForPatient(ctx context.Context, patientID string, activeOn *time.Time) ([]models.Prescription, error) {
	var prescriptions []models.Prescription
	query := r.db.WithContext(ctx).
		Preload("Medicine").
		Preload("Doctor").
		Where("patient_id = ?", patientID).
		Order("start_date desc")
	if activeOn != nil {
		day := time.Date(activeOn.Year(), activeOn.Month(), activeOn.Day(), 0, 0, 0, 0, activeOn.Location())
		query = query.Where("end_date IS NULL OR end_date >= ?", day)
	}
	if err := query.Find(&prescriptions).Error; err != nil {
		return nil, err
	}
	return prescriptions, nil
}

func (r *gormPrescriptionRepo) GetByID(ctx context.Context, id string) (*models.Prescription, error) {
	var prescription models.Prescription
	err := r.db.WithContext(ctx).
		Preload("Medicine").
		Preload("Doctor").
		First(&prescription, "id = ?", id).Error
	if err != nil {
		return nil, notFoundOr(err, "Prescription")
	}
	return &prescription, nil
}

func (r *gormPrescriptionRepo) Insert(ctx context.Context, prescription *models.Prescription) error {
	return r.db.WithContext(ctx).Create(prescription).Error
}

func (r *gormPrescriptionRepo) Delete(ctx context.Context, id string) error {
	// Reminders are owned by the prescription; remove them in the same
	// transaction so the cascade holds even without FK support.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Reminder{}, "prescription_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Prescription{}, "id = ?", id).Error
	})
}
