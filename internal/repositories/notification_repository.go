package repositories

import (
	"context"

	"gorm.io/gorm"

	"pointage/internal/models/db_models"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *db_models.Notification) error
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *db_models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}
