package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pointage/internal/models/db_models"
)

type OfficeRepository interface {
	ListActiveByCompany(ctx context.Context, companyID uuid.UUID) ([]db_models.Office, error)
}

type officeRepository struct {
	db *gorm.DB
}

func NewOfficeRepository(db *gorm.DB) OfficeRepository {
	return &officeRepository{db: db}
}

func (r *officeRepository) ListActiveByCompany(ctx context.Context, companyID uuid.UUID) ([]db_models.Office, error) {
	var offices []db_models.Office
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND active = TRUE", companyID).
		Find(&offices).Error
	if err != nil {
		return nil, err
	}
	return offices, nil
}
