package commands

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/JulianHBuecher/ev-server/internal/domain/reservation"
	"github.com/JulianHBuecher/ev-server/internal/domain/station"
	"github.com/JulianHBuecher/ev-server/internal/domain/tag"
	"github.com/JulianHBuecher/ev-server/internal/infra/locking"
)

// RemoteStatus is the charge point's answer to a reservation command. Every
// non-accepted kind is surfaced distinctly to the caller.
type RemoteStatus string

const (
	RemoteAccepted    RemoteStatus = "Accepted"
	RemoteRejected    RemoteStatus = "Rejected"
	RemoteFaulted     RemoteStatus = "Faulted"
	RemoteOccupied    RemoteStatus = "Occupied"
	RemoteUnavailable RemoteStatus = "Unavailable"
)

// ReserveNowRequest is the remote command that places a reservation
// physically on a connector.
type ReserveNowRequest struct {
	ConnectorID   int
	ExpiryDate    time.Time
	IdTag         string
	ParentIdTag   string
	ReservationID int
}

// ChargePointClient issues reservation commands to one live charge point.
type ChargePointClient interface {
	ReserveNow(ctx context.Context, req ReserveNowRequest) (RemoteStatus, error)
	CancelReservation(ctx context.Context, reservationID int) (RemoteStatus, error)
}

// ChargePointGateway hands out clients for stations with a live
// connection. A station without one yields errs.ErrBackendUnreachable.
type ChargePointGateway interface {
	ClientFor(ctx context.Context, tenantID uuid.UUID, stationID string) (ChargePointClient, error)
}

type ReservationRepository interface {
	FindByID(ctx context.Context, tenantID uuid.UUID, id int) (*reservation.Reservation, error)
	FindCollisions(ctx context.Context, tenantID uuid.UUID, candidate *reservation.Reservation, now time.Time) ([]*reservation.Reservation, error)
	ExistsActiveReserveNow(ctx context.Context, tenantID uuid.UUID, idTag string, userID *uuid.UUID, excludeID int) (bool, error)
	Save(ctx context.Context, tenantID uuid.UUID, res *reservation.Reservation) error
	Delete(ctx context.Context, tenantID uuid.UUID, id int) error
	TransitionStatus(ctx context.Context, tenantID uuid.UUID, id int, from, to reservation.Status, by uuid.UUID, at time.Time) (bool, error)
	FindExpired(ctx context.Context, tenantID uuid.UUID, now time.Time) ([]*reservation.Reservation, error)
	FindUpcoming(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]*reservation.Reservation, error)
	FindInProgress(ctx context.Context, tenantID uuid.UUID) ([]*reservation.Reservation, error)
	FindUnmetArrivals(ctx context.Context, tenantID uuid.UUID, cutoff time.Time) ([]*reservation.Reservation, error)
}

type StationRepository interface {
	FindByID(ctx context.Context, tenantID uuid.UUID, stationID string) (*station.ChargingStation, error)
	BindConnector(ctx context.Context, tenantID uuid.UUID, stationID string, connectorID, reservationID int) error
	ReleaseConnector(ctx context.Context, tenantID uuid.UUID, stationID string, connectorID, reservationID int) error
	ConnectorStatus(ctx context.Context, tenantID uuid.UUID, stationID string, connectorID int) (station.ConnectorStatus, error)
}

type TagRepository interface {
	FindByID(ctx context.Context, tenantID uuid.UUID, id string) (*tag.Tag, error)
	FindByVisualID(ctx context.Context, tenantID uuid.UUID, visualID string) (*tag.Tag, error)
}

// Notifier delivers reservation lifecycle events to the owning user.
// Fire-and-forget: implementations never fail the triggering operation.
type Notifier interface {
	ReservationCreated(ctx context.Context, tenantID uuid.UUID, res *reservation.Reservation)
	ReservationCancelled(ctx context.Context, tenantID uuid.UUID, res *reservation.Reservation)
	ReservationUnmet(ctx context.Context, tenantID uuid.UUID, res *reservation.Reservation)
	ReservationStatusChanged(ctx context.Context, tenantID uuid.UUID, res *reservation.Reservation)
}

// LockService provides non-blocking tenant-scoped exclusive locks for the
// reconciliation sweeps.
type LockService interface {
	AcquireExclusive(ctx context.Context, tenantID uuid.UUID, entity, resource string) (*locking.Lock, bool, error)
	Release(ctx context.Context, lock *locking.Lock) error
}
