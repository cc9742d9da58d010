package repository

import (
	"context"

	"gorm.io/gorm"

	"medreminder-server/internal/models"
)

// MedicineRepository is the persistence contract for the medicine catalog.
type MedicineRepository interface {
	List(ctx context.Context) ([]models.Medicine, error)
	GetByID(ctx context.Context, id string) (*models.Medicine, error)
	Insert(ctx context.Context, medicine *models.Medicine) error
}

type gormMedicineRepo struct {
	db *gorm.DB
}

// NewMedicineRepository creates a gorm-backed MedicineRepository.
func NewMedicineRepository(db *gorm.DB) MedicineRepository {
	return &gormMedicineRepo{db: db}
}

func (r *gormMedicineRepo) List(ctx context.Context) ([]models.Medicine, error) {
	var medicines []models.Medicine
	if err := r.db.WithContext(ctx).Order("name asc").Find(&medicines).Error; err != nil {
		return nil, err
	}
	return medicines, nil
}

func (r *gormMedicineRepo) GetByID(ctx context.Context, id string) (*models.Medicine, error) {
	var medicine models.Medicine
	if err := r.db.WithContext(ctx).First(&medicine, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "Medicine")
	}
	return &medicine, nil
}

func (r *gormMedicineRepo) Insert(ctx context.Context, medicine *models.Medicine) error {
	return r.db.WithContext(ctx).Create(medicine).Error
}
