package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidID            = errors.New("reservation id must be a positive integer")
	ErrMissingStation       = errors.New("charging station id is required")
	ErrInvalidConnector     = errors.New("connector id must be a positive integer")
	ErrMissingIdTag         = errors.New("id tag is required")
	ErrMissingPlannedWindow = errors.New("planned reservation requires a from/to window")
	ErrInvalidType          = errors.New("invalid reservation type")
)

// Audit carries the created/last-changed ownership props. CreatedBy is set
// once on construction; Touch records every later mutation.
type Audit struct {
	CreatedBy     uuid.UUID
	CreatedOn     time.Time
	LastChangedBy uuid.UUID
	LastChangedOn time.Time
}

func (a *Audit) Touch(by uuid.UUID, at time.Time) {
	a.LastChangedBy = by
	a.LastChangedOn = at
}

// Reservation is a time-bounded claim on a single connector of a charging
// station. The id is externally assigned and unique per tenant.
type Reservation struct {
	id                int
	chargingStationID string
	connectorID       int
	window            *TimeWindow
	expiryDate        time.Time
	arrivalTime       *time.Time
	idTag             string
	parentIdTag       string
	userID            *uuid.UUID
	carID             *uuid.UUID
	typ               Type
	status            Status
	audit             Audit
}

type NewReservationParams struct {
	ID                int
	ChargingStationID string
	ConnectorID       int
	FromDate          time.Time
	ToDate            time.Time
	ExpiryDate        time.Time
	ArrivalTime       *time.Time
	IdTag             string
	ParentIdTag       string
	UserID            *uuid.UUID
	CarID             *uuid.UUID
	Type              Type
	CreatedBy         uuid.UUID
}

func NewReservation(now time.Time, p NewReservationParams) (*Reservation, error) {
	if p.ID <= 0 {
		return nil, ErrInvalidID
	}
	if p.ChargingStationID == "" {
		return nil, ErrMissingStation
	}
	if p.ConnectorID <= 0 {
		return nil, ErrInvalidConnector
	}
	if p.IdTag == "" {
		return nil, ErrMissingIdTag
	}
	if !p.Type.IsValid() {
		return nil, ErrInvalidType
	}
	if p.ExpiryDate.IsZero() {
		return nil, ErrMissingExpiryDate
	}

	var window *TimeWindow
	switch p.Type {
	case TypePlanned:
		if p.FromDate.IsZero() || p.ToDate.IsZero() {
			return nil, ErrMissingPlannedWindow
		}
		w, err := NewTimeWindow(p.FromDate, p.ToDate)
		if err != nil {
			return nil, err
		}
		window = &w
	case TypeReserveNow:
		// Reserve-now claims the connector immediately; only the expiry
		// deadline bounds it.
	}

	r := &Reservation{
		id:                p.ID,
		chargingStationID: p.ChargingStationID,
		connectorID:       p.ConnectorID,
		window:            window,
		expiryDate:        p.ExpiryDate,
		arrivalTime:       p.ArrivalTime,
		idTag:             p.IdTag,
		parentIdTag:       p.ParentIdTag,
		userID:            p.UserID,
		carID:             p.CarID,
		typ:               p.Type,
		audit: Audit{
			CreatedBy:     p.CreatedBy,
			CreatedOn:     now,
			LastChangedBy: p.CreatedBy,
			LastChangedOn: now,
		},
	}
	r.status = DetermineStatus(r, now)
	return r, nil
}

// ReconstructReservation rebuilds an entity from persisted state without
// re-running creation validation.
func ReconstructReservation(
	id int,
	chargingStationID string,
	connectorID int,
	window *TimeWindow,
	expiryDate time.Time,
	arrivalTime *time.Time,
	idTag, parentIdTag string,
	userID, carID *uuid.UUID,
	typ Type,
	status Status,
	audit Audit,
) *Reservation {
	return &Reservation{
		id:                id,
		chargingStationID: chargingStationID,
		connectorID:       connectorID,
		window:            window,
		expiryDate:        expiryDate,
		arrivalTime:       arrivalTime,
		idTag:             idTag,
		parentIdTag:       parentIdTag,
		userID:            userID,
		carID:             carID,
		typ:               typ,
		status:            status,
		audit:             audit,
	}
}

// DetermineStatus resolves the lifecycle status of a non-terminal
// reservation from its type and time window. It is a pure function of its
// inputs: callers pass "now" explicitly. Reserve-now reservations are
// active the instant they are accepted; planned reservations follow their
// window.
func DetermineStatus(r *Reservation, now time.Time) Status {
	if r.typ == TypeReserveNow {
		return StatusInProgress
	}
	w := r.EffectiveWindow(now)
	switch {
	case !w.StartedBy(now):
		return StatusScheduled
	case w.EndedBy(now):
		return StatusExpired
	default:
		return StatusInProgress
	}
}

// EffectiveWindow is the interval the reservation claims for collision
// purposes. A reservation without an explicit window (reserve-now) claims
// [now, expiryDate].
func (r *Reservation) EffectiveWindow(now time.Time) TimeWindow {
	if r.window != nil {
		return *r.window
	}
	return TimeWindow{from: now, to: r.expiryDate}
}

// TransitionTo validates the status change against the lifecycle table and
// applies it. A self-transition is an idempotent no-op.
func (r *Reservation) TransitionTo(status Status, by uuid.UUID, at time.Time) error {
	if !CanTransition(r.status, status) {
		return &InvalidTransitionError{From: r.status, To: status}
	}
	if r.status == status {
		return nil
	}
	r.status = status
	r.audit.Touch(by, at)
	return nil
}

// InvalidTransitionError names the rejected from/to pair.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return "illegal status transition from " + string(e.From) + " to " + string(e.To)
}

func (r *Reservation) IsActive() bool {
	return r.status == StatusScheduled || r.status == StatusInProgress
}

func (r *Reservation) HasExpired(now time.Time) bool {
	return !r.expiryDate.IsZero() && !now.Before(r.expiryDate)
}

func (r *Reservation) ID() int                   { return r.id }
func (r *Reservation) ChargingStationID() string { return r.chargingStationID }
func (r *Reservation) ConnectorID() int          { return r.connectorID }
func (r *Reservation) Window() *TimeWindow       { return r.window }
func (r *Reservation) ExpiryDate() time.Time     { return r.expiryDate }
func (r *Reservation) ArrivalTime() *time.Time   { return r.arrivalTime }
func (r *Reservation) IdTag() string             { return r.idTag }
func (r *Reservation) ParentIdTag() string       { return r.parentIdTag }
func (r *Reservation) UserID() *uuid.UUID        { return r.userID }
func (r *Reservation) CarID() *uuid.UUID         { return r.carID }
func (r *Reservation) Type() Type                { return r.typ }
func (r *Reservation) Status() Status            { return r.status }
func (r *Reservation) Audit() Audit              { return r.audit }
