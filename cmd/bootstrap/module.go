package bootstrap

import (
	"go.uber.org/fx"

	"github.com/JulianHBuecher/ev-server/cmd/bootstrap/components"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	RedisModule,
	NATSModule,
	JWTModule,
	OCPPModule,
	components.RepositoryModule,
	components.UseCaseModule,
	components.SchedulerModule,
	components.HandlerModule,
)
