package metricsfx

import (
	"go.uber.org/fx"

	"pointage/pkg/metrics"
)

var Module = fx.Provide(metrics.NewRegistry)
