package components

import (
	"go.uber.org/fx"

	"github.com/JulianHBuecher/ev-server/internal/pkg/clock"
	"github.com/JulianHBuecher/ev-server/internal/usecase/commands"
	"github.com/JulianHBuecher/ev-server/internal/usecase/queries"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		commands.NewReservationUseCase,
		queries.NewReservationQueries,
	),
)
