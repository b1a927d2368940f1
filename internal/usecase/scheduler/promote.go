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

// PromoteSweep places scheduled reservations physically on their connector
// once their window comes within the promotion horizon, and re-affirms
// in-progress reservations whose connector has dropped back to available.
type PromoteSweep struct {
	reservations commands.ReservationRepository
	stations     commands.StationRepository
	gateway      commands.ChargePointGateway
	notifier     commands.Notifier
	clock        clock.Clock
	horizon      time.Duration
}

func NewPromoteSweep(
	reservations commands.ReservationRepository,
	stations commands.StationRepository,
	gateway commands.ChargePointGateway,
	notifier commands.Notifier,
	clock clock.Clock,
	horizon time.Duration,
) *PromoteSweep {
	return &PromoteSweep{
		reservations: reservations,
		stations:     stations,
		gateway:      gateway,
		notifier:     notifier,
		clock:        clock,
		horizon:      horizon,
	}
}

func (s *PromoteSweep) Name() string { return "promote" }

func (s *PromoteSweep) Run(ctx context.Context, tenantID uuid.UUID) error {
	now := s.clock.Now()

	if err := s.promoteUpcoming(ctx, tenantID, now); err != nil {
		return err
	}
	return s.reaffirmInProgress(ctx, tenantID, now)
}

func (s *PromoteSweep) promoteUpcoming(ctx context.Context, tenantID uuid.UUID, now time.Time) error {
	upcoming, err := s.reservations.FindUpcoming(ctx, tenantID, now.Add(-s.horizon), now.Add(s.horizon))
	if err != nil {
		return err
	}

	for _, res := range upcoming {
		accepted, err := s.placeRemote(ctx, tenantID, res, now)
		if err != nil {
			slog.Warn("failed to place scheduled reservation on station",
				"tenant_id", tenantID, "reservation_id", res.ID(), "error", err)
			continue
		}
		if !accepted {
			slog.Warn("charge point refused scheduled reservation",
				"tenant_id", tenantID, "reservation_id", res.ID())
			continue
		}

		swapped, err := s.reservations.TransitionStatus(
			ctx, tenantID, res.ID(), reservation.StatusScheduled, reservation.StatusInProgress, uuid.Nil, now)
		if err != nil {
			slog.Error("failed to promote reservation",
				"tenant_id", tenantID, "reservation_id", res.ID(), "error", err)
			continue
		}
		if !swapped {
			continue
		}

		if err := s.stations.BindConnector(ctx, tenantID, res.ChargingStationID(), res.ConnectorID(), res.ID()); err != nil {
			slog.Warn("failed to bind connector of promoted reservation",
				"tenant_id", tenantID, "reservation_id", res.ID(), "error", err)
		}

		if err := res.TransitionTo(reservation.StatusInProgress, uuid.Nil, now); err == nil {
			s.notifier.ReservationStatusChanged(ctx, tenantID, res)
		}
	}
	return nil
}

// reaffirmInProgress re-sends the reservation command when a station has
// lost it, visible as the connector reporting available while a live
// reservation still claims it.
func (s *PromoteSweep) reaffirmInProgress(ctx context.Context, tenantID uuid.UUID, now time.Time) error {
	inProgress, err := s.reservations.FindInProgress(ctx, tenantID)
	if err != nil {
		return err
	}

	for _, res := range inProgress {
		status, err := s.stations.ConnectorStatus(ctx, tenantID, res.ChargingStationID(), res.ConnectorID())
		if err != nil {
			slog.Warn("failed to read connector status",
				"tenant_id", tenantID, "reservation_id", res.ID(), "error", err)
			continue
		}
		if status != station.ConnectorAvailable {
			continue
		}
		if _, err := s.placeRemote(ctx, tenantID, res, now); err != nil {
			slog.Warn("failed to re-affirm reservation on station",
				"tenant_id", tenantID, "reservation_id", res.ID(), "error", err)
		}
	}
	return nil
}

func (s *PromoteSweep) placeRemote(ctx context.Context, tenantID uuid.UUID, res *reservation.Reservation, now time.Time) (bool, error) {
	client, err := s.gateway.ClientFor(ctx, tenantID, res.ChargingStationID())
	if err != nil {
		return false, err
	}
	status, err := client.ReserveNow(ctx, commands.ReserveNowRequest{
		ConnectorID:   res.ConnectorID(),
		ExpiryDate:    res.EffectiveWindow(now).To(),
		IdTag:         res.IdTag(),
		ParentIdTag:   res.ParentIdTag(),
		ReservationID: res.ID(),
	})
	if err != nil {
		return false, err
	}
	return status == commands.RemoteAccepted, nil
}
