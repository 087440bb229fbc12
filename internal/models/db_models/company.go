package db_models

type Company struct {
	BaseModel
	Name string `gorm:"not null"`

	// Workday configuration driving the present/late status rule. An empty
	// WorkStartTime means arrivals are never marked late.
	WorkStartTime    string `gorm:"size:5"` // "HH:MM"
	LateToleranceMin int    `gorm:"not null;default:0"`

	// Company-level GPS accuracy tolerance in meters. Nil falls through to
	// the process default. Mutated by the adaptive tuner when the company is
	// the owning context.
	CheckinAccuracy *float64

	Offices []Office `gorm:"foreignKey:CompanyID"`
}
