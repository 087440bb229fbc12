package db_models

import "github.com/google/uuid"

type Notification struct {
	BaseModel
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`
	Kind   string    `gorm:"size:30;not null"`
	Title  string    `gorm:"not null"`
	Body   string
	ReadAt *int64
}
