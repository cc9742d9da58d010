package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"medreminder-server/internal/models"
)

// ReminderRepository is the persistence contract for reminders. The
// lifecycle engine depends on this interface, never on gorm directly.
type ReminderRepository interface {
	// ListInRange returns the patient's reminders with remind_at in
	// [from, to), ordered by remind_at ascending. A nil "to" means no
	// upper bound. An empty result is not an error.
	ListInRange(ctx context.Context, patientID string, from time.Time, to *time.Time) ([]models.Reminder, error)
	GetByID(ctx context.Context, id string) (*models.Reminder, error)
	Insert(ctx context.Context, reminder *models.Reminder) error
	// UpdateStatus writes the status unconditionally; transition legality
	// is the engine's responsibility.
	UpdateStatus(ctx context.Context, id string, status models.ReminderStatus) error
	Update(ctx context.Context, id string, remindAt time.Time, notes string) error
	Delete(ctx context.Context, id string) error
}

type gormReminderRepo struct {
	db *gorm.DB
}

// NewReminderRepository creates a gorm-backed ReminderRepository.
func NewReminderRepository(db *gorm.DB) ReminderRepository {
	return &gormReminderRepo{db: db}
}

func (r *gormReminderRepo) ListInRange(ctx context.Context, patientID string, from time.Time, to *time.Time) ([]models.Reminder, error) {
	var reminders []models.Reminder
	query := r.db.WithContext(ctx).
		Preload("Prescription").
		Preload("Prescription.Medicine").
		Where("patient_id = ? AND remind_at >= ?", patientID, from).
		Order("remind_at asc")
	if to != nil {
		query = query.Where("remind_at < ?", *to)
	}
	if err := query.Find(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}

func (r *gormReminderRepo) GetByID(ctx context.Context, id string) (*models.Reminder, error) {
	var reminder models.Reminder
	err := r.db.WithContext(ctx).
		Preload("Prescription").
		Preload("Prescription.Medicine").
		First(&reminder, "id = ?", id).Error
	if err != nil {
		return nil, notFoundOr(err, "Reminder")
	}
	return &reminder, nil
}

func (r *gormReminderRepo) Insert(ctx context.Context, reminder *models.Reminder) error {
	return r.db.WithContext(ctx).Create(reminder).Error
}

func (r *gormReminderRepo) UpdateStatus(ctx context.Context, id string, status models.ReminderStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.Reminder{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &NotFoundError{Resource: "Reminder"}
	}
	return nil
}

func (r *gormReminderRepo) Update(ctx context.Context, id string, remindAt time.Time, notes string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Reminder{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"remind_at": remindAt, "notes": notes})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &NotFoundError{Resource: "Reminder"}
	}
	return nil
}

func (r *gormReminderRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Reminder{}, "id = ?", id).Error
}
