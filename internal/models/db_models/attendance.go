package db_models

import (
	"time"

	"github.com/google/uuid"
)

const (
	AttendanceKindOffice  = "office"
	AttendanceKindMission = "mission"

	AttendanceStatusPresent = "present"
	AttendanceStatusLate    = "late"
)

// Attendance is one physical check-in event. The composite unique index on
// (user_id, date) is the idempotency gate: at most one attendance per user
// per calendar day, whatever the kind, and the second concurrent writer
// loses at the constraint rather than at a read-then-write race.
type Attendance struct {
	BaseModel
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_attendance_user_day,priority:1"`
	Kind   string    `gorm:"size:10;not null"`
	// Calendar date at midnight UTC.
	Date          time.Time  `gorm:"type:date;not null;uniqueIndex:ux_attendance_user_day,priority:2"`
	ArrivalTime   time.Time  `gorm:"not null"`
	DepartureTime *time.Time
	Status        string     `gorm:"size:10;not null"`

	Latitude  float64 `gorm:"not null"`
	Longitude float64 `gorm:"not null"`
	Accuracy  float64 `gorm:"not null"`
	Altitude  *float64
	Heading   *float64
	Speed     *float64

	OfficeID  *uuid.UUID `gorm:"type:uuid;index"`
	MissionID *uuid.UUID `gorm:"type:uuid;index"`
	// Meters to the matched site, when one existed.
	Distance *float64

	Office  *Office  `gorm:"foreignKey:OfficeID"`
	Mission *Mission `gorm:"foreignKey:MissionID"`
}
