package scheduler

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JulianHBuecher/ev-server/internal/domain/reservation"
	"github.com/JulianHBuecher/ev-server/internal/pkg/clock"
	"github.com/JulianHBuecher/ev-server/internal/usecase/commands"
)

// ExpireSweep moves live reservations past their expiry deadline to
// expired and frees their connector bindings.
type ExpireSweep struct {
	reservations commands.ReservationRepository
	stations     commands.StationRepository
	notifier     commands.Notifier
	clock        clock.Clock
}

func NewExpireSweep(
	reservations commands.ReservationRepository,
	stations commands.StationRepository,
	notifier commands.Notifier,
	clock clock.Clock,
) *ExpireSweep {
	return &ExpireSweep{
		reservations: reservations,
		stations:     stations,
		notifier:     notifier,
		clock:        clock,
	}
}

func (s *ExpireSweep) Name() string { return "expire" }

func (s *ExpireSweep) Run(ctx context.Context, tenantID uuid.UUID) error {
	now := s.clock.Now()

	expired, err := s.reservations.FindExpired(ctx, tenantID, now)
	if err != nil {
		return err
	}

	for _, res := range expired {
		// Compare-and-set: a concurrent cancel wins and this pass skips.
		swapped, err := s.reservations.TransitionStatus(
			ctx, tenantID, res.ID(), res.Status(), reservation.StatusExpired, uuid.Nil, now)
		if err != nil {
			slog.Error("failed to expire reservation",
				"tenant_id", tenantID, "reservation_id", res.ID(), "error", err)
			continue
		}
		if !swapped {
			continue
		}

		if err := s.stations.ReleaseConnector(ctx, tenantID, res.ChargingStationID(), res.ConnectorID(), res.ID()); err != nil {
			slog.Warn("failed to release connector of expired reservation",
				"tenant_id", tenantID, "reservation_id", res.ID(), "error", err)
		}

		if err := res.TransitionTo(reservation.StatusExpired, uuid.Nil, now); err == nil {
			s.notifier.ReservationStatusChanged(ctx, tenantID, res)
		}
	}
	return nil
}
