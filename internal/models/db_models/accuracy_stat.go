package db_models

import "github.com/google/uuid"

const (
	AccuracyContextCompany = "company"
	AccuracyContextOffice  = "office"
	AccuracyContextMission = "mission"
)

// AccuracyStat holds the adaptive-tuning state for one (context, user)
// pair. Created lazily on the first sample, updated on every one, never
// deleted. Streak invariant: success and failure streaks are never both
// positive. TemporaryAccuracy and TemporaryExpiresAt are set and cleared
// together.
type AccuracyStat struct {
	BaseModel
	ContextType string    `gorm:"size:10;not null;uniqueIndex:ux_accuracy_context,priority:1"`
	ContextID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_accuracy_context,priority:2"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_accuracy_context,priority:3"`

	SuccessStreak   int     `gorm:"not null;default:0"`
	FailureStreak   int     `gorm:"not null;default:0"`
	TotalSamples    int     `gorm:"not null;default:0"`
	AverageAccuracy float64 `gorm:"not null;default:0"`

	// Last true target before any relaxation.
	BaselineAccuracy *float64
	// Active temporary relaxation, reverted on expiry or early recovery.
	TemporaryAccuracy  *float64
	TemporaryExpiresAt *int64
}
