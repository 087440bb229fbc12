package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pointage/internal/models/db_models"
)

type AttendanceRepository interface {
	Create(ctx context.Context, attendance *db_models.Attendance) error
	// FindByUserAndDate returns the user's attendance for a calendar day,
	// whatever its kind, or (nil, nil) when none exists.
	FindByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) (*db_models.Attendance, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]db_models.Attendance, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Create(ctx context.Context, attendance *db_models.Attendance) error {
	return r.db.WithContext(ctx).Create(attendance).Error
}

func (r *attendanceRepository) FindByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) (*db_models.Attendance, error) {
	var attendance db_models.Attendance
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&attendance).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &attendance, nil
}

func (r *attendanceRepository) ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]db_models.Attendance, error) {
	var attendances []db_models.Attendance
	offset := (page - 1) * pageSize

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date desc").
		Offset(offset).
		Limit(pageSize).
		Find(&attendances).Error
	if err != nil {
		return nil, err
	}
	return attendances, nil
}
