package components

import (
	"go.uber.org/fx"

	"github.com/JulianHBuecher/ev-server/internal/handler"
	"github.com/JulianHBuecher/ev-server/internal/handler/api"
	"github.com/JulianHBuecher/ev-server/internal/handler/middleware"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewReservationHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
