package repository

import (
	"context"

	"gorm.io/gorm"

	"medreminder-server/internal/models"
)

// ChatRepository is the persistence contract for the chat transcript.
// Messages are append-only; there are no update or delete operations.
type ChatRepository interface {
	Append(ctx context.Context, message *models.ChatMessage) error
	// ListForPatient returns the patient's transcript oldest first.
	ListForPatient(ctx context.Context, patientID string) ([]models.ChatMessage, error)
}

type gormChatRepo struct {
	db *gorm.DB
}

// NewChatRepository creates a gorm-backed ChatRepository.
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &gormChatRepo{db: db}
}

func (r *gormChatRepo) Append(ctx context.Context, message *models.ChatMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *gormChatRepo) ListForPatient(ctx context.Context, patientID string) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at asc").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
