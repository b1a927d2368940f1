package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/JulianHBuecher/ev-server/internal/domain/reservation"
	"github.com/JulianHBuecher/ev-server/internal/domain/station"
	"github.com/JulianHBuecher/ev-server/internal/pkg/clock"
	"github.com/JulianHBuecher/ev-server/internal/usecase/commands"
)

// UnmetSweep cancels in-progress reservations whose driver never showed
// up: the arrival deadline plus grace has passed and the connector never
// left available.
type UnmetSweep struct {
	reservations commands.ReservationRepository
	stations     commands.StationRepository
	gateway      commands.ChargePointGateway
	notifier     commands.Notifier
	clock        clock.Clock
	grace        time.Duration
}

func NewUnmetSweep(
	reservations commands.ReservationRepository,
	stations commands.StationRepository,
	gateway commands.ChargePointGateway,
	notifier commands.Notifier,
	clock clock.Clock,
	grace time.Duration,
) *UnmetSweep {
	return &UnmetSweep{
		reservations: reservations,
		stations:     stations,
		gateway:      gateway,
		notifier:     notifier,
		clock:        clock,
		grace:        grace,
	}
}

func (s *UnmetSweep) Name() string { return "unmet" }

func (s *UnmetSweep) Run(ctx context.Context, tenantID uuid.UUID) error {
	now := s.clock.Now()

	overdue, err := s.reservations.FindUnmetArrivals(ctx, tenantID, now.Add(-s.grace))
	if err != nil {
		return err
	}

	for _, res := range overdue {
		arrived, err := s.hasArrived(ctx, tenantID, res)
		if err != nil {
			slog.Warn("failed to read connector status",
				"tenant_id", tenantID, "reservation_id", res.ID(), "error", err)
			continue
		}
		if arrived {
			continue
		}

		accepted, err := s.cancelRemote(ctx, tenantID, res)
		if err != nil {
			slog.Warn("failed to cancel unmet reservation on station",
				"tenant_id", tenantID, "reservation_id", res.ID(), "error", err)
			continue
		}
		if !accepted {
			continue
		}

		swapped, err := s.reservations.TransitionStatus(
			ctx, tenantID, res.ID(), reservation.StatusInProgress, reservation.StatusUnmet, uuid.Nil, now)
		if err != nil {
			slog.Error("failed to mark reservation unmet",
				"tenant_id", tenantID, "reservation_id", res.ID(), "error", err)
			continue
		}
		if !swapped {
			continue
		}

		if err := s.stations.ReleaseConnector(ctx, tenantID, res.ChargingStationID(), res.ConnectorID(), res.ID()); err != nil {
			slog.Warn("failed to release connector of unmet reservation",
				"tenant_id", tenantID, "reservation_id", res.ID(), "error", err)
		}

		if err := res.TransitionTo(reservation.StatusUnmet, uuid.Nil, now); err == nil {
			s.notifier.ReservationUnmet(ctx, tenantID, res)
			s.notifier.ReservationStatusChanged(ctx, tenantID, res)
		}
	}
	return nil
}

// hasArrived treats any occupied-like connector state as the driver having
// plugged in.
func (s *UnmetSweep) hasArrived(ctx context.Context, tenantID uuid.UUID, res *reservation.Reservation) (bool, error) {
	status, err := s.stations.ConnectorStatus(ctx, tenantID, res.ChargingStationID(), res.ConnectorID())
	if err != nil {
		return false, err
	}
	switch status {
	case station.ConnectorOccupied, station.ConnectorCharging, station.ConnectorPreparing:
		return true, nil
	default:
		return false, nil
	}
}

func (s *UnmetSweep) cancelRemote(ctx context.Context, tenantID uuid.UUID, res *reservation.Reservation) (bool, error) {
	client, err := s.gateway.ClientFor(ctx, tenantID, res.ChargingStationID())
	if err != nil {
		return false, err
	}
	status, err := client.CancelReservation(ctx, res.ID())
	if err != nil {
		return false, err
	}
	return status == commands.RemoteAccepted, nil
}
