package components

import (
	"go.uber.org/fx"

	"github.com/JulianHBuecher/ev-server/internal/infra/locking"
	"github.com/JulianHBuecher/ev-server/internal/infra/notification"
	"github.com/JulianHBuecher/ev-server/internal/infra/ocpp"
	"github.com/JulianHBuecher/ev-server/internal/infra/readstore"
	repo_impl "github.com/JulianHBuecher/ev-server/internal/infra/repository"
	"github.com/JulianHBuecher/ev-server/internal/usecase/commands"
	"github.com/JulianHBuecher/ev-server/internal/usecase/queries"
	"github.com/JulianHBuecher/ev-server/internal/usecase/scheduler"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		// Write side
		repo_impl.NewStationRepository,
		fx.Annotate(
			func(s *repo_impl.StationRepository) *repo_impl.StationRepository { return s },
			fx.As(new(commands.StationRepository)),
		),
		fx.Annotate(
			repo_impl.NewReservationRepository,
			fx.As(new(commands.ReservationRepository)),
		),
		fx.Annotate(
			repo_impl.NewTagRepository,
			fx.As(new(commands.TagRepository)),
		),
		fx.Annotate(
			repo_impl.NewTenantRepository,
			fx.As(new(scheduler.TenantRepository)),
		),
		// Read side
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationStore)),
		),
		// Collaborators
		fx.Annotate(
			func(r *ocpp.Registry) *ocpp.Registry { return r },
			fx.As(new(commands.ChargePointGateway)),
		),
		fx.Annotate(
			func(s *locking.RedisLockService) *locking.RedisLockService { return s },
			fx.As(new(commands.LockService)),
		),
		fx.Annotate(
			func(n *notification.NATSNotifier) *notification.NATSNotifier { return n },
			fx.As(new(commands.Notifier)),
		),
	),
)
