package bootstrap

import (
	"go.uber.org/fx"

	"github.com/JulianHBuecher/ev-server/internal/pkg/config"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
)
