package infra

import (
	"os"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"pointage/internal/models/db_models"
)

func InitPostgresql() *gorm.DB {
	dsn := os.Getenv("POSTGRES_URL")

	// TranslateError surfaces unique-constraint violations as
	// gorm.ErrDuplicatedKey, which the check-in engine maps to the
	// already-checked-in error.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		logrus.WithError(err).Fatal("error connecting to database")
	}

	if err := Migrate(db); err != nil {
		logrus.WithError(err).Fatal("error migrating database schema")
	}

	return db
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&db_models.Company{},
		&db_models.Office{},
		&db_models.Mission{},
		&db_models.MissionInvitation{},
		&db_models.Attendance{},
		&db_models.AccuracyStat{},
		&db_models.Notification{},
	)
}

func ClosePostgresql(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logrus.WithError(err).Error("error getting database instance")
		return
	}
	if err := sqlDB.Close(); err != nil {
		logrus.WithError(err).Error("error closing database connection")
	}
}
