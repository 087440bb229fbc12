package dbfx

import (
	"go.uber.org/fx"

	"pointage/internal/infra"
)

var Module = fx.Provide(infra.InitPostgresql)
