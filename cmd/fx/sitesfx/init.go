package sitesfx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"pointage/internal/repositories"
)

var Module = fx.Provide(
	provideCompanyRepo, provideOfficeRepo, provideMissionRepo)

func provideCompanyRepo(db *gorm.DB) repositories.CompanyRepository {
	return repositories.NewCompanyRepository(db)
}

func provideOfficeRepo(db *gorm.DB) repositories.OfficeRepository {
	return repositories.NewOfficeRepository(db)
}

func provideMissionRepo(db *gorm.DB) repositories.MissionRepository {
	return repositories.NewMissionRepository(db)
}
