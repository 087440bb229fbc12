package db_models

import "github.com/google/uuid"

const (
	InvitationPending  = "pending"
	InvitationAccepted = "accepted"
	InvitationDeclined = "declined"
)

type Mission struct {
	BaseModel
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
	Title     string    `gorm:"not null"`

	// Optional mission site. The geofence gate only applies when all three
	// are configured.
	Latitude  *float64
	Longitude *float64
	Radius    *float64

	CheckinAccuracy *float64

	Company     Company             `gorm:"foreignKey:CompanyID"`
	Invitations []MissionInvitation `gorm:"foreignKey:MissionID"`
}

// MissionInvitation is the pending/accepted/declined workflow owned by the
// mission CRUD surface; the check-in engine only reads the status.
type MissionInvitation struct {
	BaseModel
	MissionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_mission_user,priority:1"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_mission_user,priority:2"`
	Status    string    `gorm:"size:10;not null;default:pending"`
}
