package bootstrap

import (
	"go.uber.org/fx"

	"github.com/JulianHBuecher/ev-server/internal/pkg/config"
	"github.com/JulianHBuecher/ev-server/internal/pkg/jwt"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

func NewJWTService(cfg config.Config) *jwt.Service {
	return jwt.NewService(cfg.JWT.Secret)
}
