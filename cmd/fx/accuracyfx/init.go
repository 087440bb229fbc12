package accuracyfx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"pointage/internal/services"
	"pointage/pkg/metrics"
)

var Module = fx.Provide(provideAccuracyService)

func provideAccuracyService(db *gorm.DB, m *metrics.Registry) services.AccuracyServiceInterface {
	return services.NewAccuracyService(db, m)
}
