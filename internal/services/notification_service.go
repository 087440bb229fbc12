package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"pointage/internal/models/db_models"
	"pointage/internal/repositories"
)

// NotificationServiceInterface persists user notifications. All methods are
// best effort: errors are logged, never returned, because the check-in they
// follow has already committed.
type NotificationServiceInterface interface {
	NotifyCheckinCreated(ctx context.Context, userID uuid.UUID, attendance *db_models.Attendance)
	NotifyLateArrival(ctx context.Context, userID uuid.UUID, attendance *db_models.Attendance)
	NotifyAlreadyCheckedIn(ctx context.Context, userID uuid.UUID)
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) NotificationServiceInterface {
	return &notificationService{notificationRepo: notificationRepo}
}

func (s *notificationService) NotifyCheckinCreated(ctx context.Context, userID uuid.UUID, attendance *db_models.Attendance) {
	s.create(ctx, &db_models.Notification{
		UserID: userID,
		Kind:   "checkin.created",
		Title:  "Check-in recorded",
		Body:   fmt.Sprintf("Your %s check-in was recorded at %s.", attendance.Kind, attendance.ArrivalTime.Format("15:04")),
	})
}

func (s *notificationService) NotifyLateArrival(ctx context.Context, userID uuid.UUID, attendance *db_models.Attendance) {
	s.create(ctx, &db_models.Notification{
		UserID: userID,
		Kind:   "checkin.late",
		Title:  "Late arrival",
		Body:   fmt.Sprintf("You checked in late at %s.", attendance.ArrivalTime.Format("15:04")),
	})
}

func (s *notificationService) NotifyAlreadyCheckedIn(ctx context.Context, userID uuid.UUID) {
	s.create(ctx, &db_models.Notification{
		UserID: userID,
		Kind:   "checkin.duplicate",
		Title:  "Already checked in",
		Body:   "You have already checked in today.",
	})
}

func (s *notificationService) create(ctx context.Context, notification *db_models.Notification) {
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"user_id": notification.UserID,
			"kind":    notification.Kind,
		}).Error("persist notification")
	}
}
