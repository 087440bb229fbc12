package db_models

import "github.com/google/uuid"

type Office struct {
	BaseModel
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"not null"`
	Latitude  float64   `gorm:"not null"`
	Longitude float64   `gorm:"not null"`
	// Geofence radius in meters.
	Radius float64 `gorm:"not null;default:200"`
	Active bool    `gorm:"not null;default:true"`

	// Per-office accuracy tolerance override, tuned per user by the
	// adaptive engine. Nil defers to the company value.
	CheckinAccuracy *float64

	Company Company `gorm:"foreignKey:CompanyID"`
}
