package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pointage/internal/models/db_models"
)

type MissionRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*db_models.Mission, error)
	// InvitationStatus returns the user's invitation status for a mission,
	// or "" when no invitation exists.
	InvitationStatus(ctx context.Context, missionID, userID uuid.UUID) (string, error)
}

type missionRepository struct {
	db *gorm.DB
}

func NewMissionRepository(db *gorm.DB) MissionRepository {
	return &missionRepository{db: db}
}

func (r *missionRepository) GetByID(ctx context.Context, id uuid.UUID) (*db_models.Mission, error) {
	var mission db_models.Mission
	err := r.db.WithContext(ctx).First(&mission, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &mission, nil
}

func (r *missionRepository) InvitationStatus(ctx context.Context, missionID, userID uuid.UUID) (string, error) {
	var invitation db_models.MissionInvitation
	err := r.db.WithContext(ctx).
		Where("mission_id = ? AND user_id = ?", missionID, userID).
		First(&invitation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return invitation.Status, nil
}
