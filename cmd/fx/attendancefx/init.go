package attendancefx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"pointage/internal/api/controllers"
	"pointage/internal/repositories"
	"pointage/internal/services"
	"pointage/pkg/metrics"
)

var Module = fx.Provide(
	provideAttendanceRepo, provideAttendanceService, controllers.NewAttendanceController)

func provideAttendanceRepo(db *gorm.DB) repositories.AttendanceRepository {
	return repositories.NewAttendanceRepository(db)
}

func provideAttendanceService(
	attendanceRepo repositories.AttendanceRepository,
	companyRepo repositories.CompanyRepository,
	officeRepo repositories.OfficeRepository,
	missionRepo repositories.MissionRepository,
	accuracy services.AccuracyServiceInterface,
	events services.EventDispatcherInterface,
	notifications services.NotificationServiceInterface,
	m *metrics.Registry,
) services.AttendanceServiceInterface {
	return services.NewAttendanceService(
		attendanceRepo, companyRepo, officeRepo, missionRepo,
		accuracy, events, notifications, m)
}
