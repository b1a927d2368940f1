package components

import (
	"context"

	"go.uber.org/fx"

	"github.com/JulianHBuecher/ev-server/internal/pkg/clock"
	"github.com/JulianHBuecher/ev-server/internal/pkg/config"
	"github.com/JulianHBuecher/ev-server/internal/usecase/commands"
	"github.com/JulianHBuecher/ev-server/internal/usecase/scheduler"
)

var SchedulerModule = fx.Module("scheduler",
	fx.Provide(
		NewExpireSweep,
		NewPromoteSweep,
		NewUnmetSweep,
		NewEngine,
	),
	fx.Invoke(StartEngine),
)

func NewExpireSweep(
	reservations commands.ReservationRepository,
	stations commands.StationRepository,
	notifier commands.Notifier,
	clk clock.Clock,
) *scheduler.ExpireSweep {
	return scheduler.NewExpireSweep(reservations, stations, notifier, clk)
}

func NewPromoteSweep(
	cfg config.Config,
	reservations commands.ReservationRepository,
	stations commands.StationRepository,
	gateway commands.ChargePointGateway,
	notifier commands.Notifier,
	clk clock.Clock,
) *scheduler.PromoteSweep {
	return scheduler.NewPromoteSweep(reservations, stations, gateway, notifier, clk, cfg.Reservation.PromotionHorizon)
}

func NewUnmetSweep(
	cfg config.Config,
	reservations commands.ReservationRepository,
	stations commands.StationRepository,
	gateway commands.ChargePointGateway,
	notifier commands.Notifier,
	clk clock.Clock,
) *scheduler.UnmetSweep {
	return scheduler.NewUnmetSweep(reservations, stations, gateway, notifier, clk, cfg.Reservation.ArrivalGrace)
}

func NewEngine(
	cfg config.Config,
	tenants scheduler.TenantRepository,
	locks commands.LockService,
	expire *scheduler.ExpireSweep,
	promote *scheduler.PromoteSweep,
	unmet *scheduler.UnmetSweep,
) *scheduler.Engine {
	return scheduler.NewEngine(tenants, locks, cfg.Reservation.SweepInterval, expire, promote, unmet)
}

func StartEngine(lc fx.Lifecycle, engine *scheduler.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			engine.Start(context.Background())
			return nil
		},
		OnStop: func(_ context.Context) error {
			engine.Stop()
			return nil
		},
	})
}
