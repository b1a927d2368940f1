package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/JulianHBuecher/ev-server/internal/domain/reservation"
	"github.com/JulianHBuecher/ev-server/internal/domain/tag"
	reqdto "github.com/JulianHBuecher/ev-server/internal/handler/dto/request"
	"github.com/JulianHBuecher/ev-server/internal/infra"
	"github.com/JulianHBuecher/ev-server/internal/pkg/clock"
	"github.com/JulianHBuecher/ev-server/internal/pkg/errs"
)

// Actor identifies the authenticated caller of a command.
type Actor struct {
	ID      uuid.UUID
	IsAdmin bool
}

type ReservationCommands interface {
	Create(ctx context.Context, tenantID uuid.UUID, actor Actor, req reqdto.UpsertReservationRequest) (*reservation.Reservation, error)
	Update(ctx context.Context, tenantID uuid.UUID, actor Actor, id int, req reqdto.UpsertReservationRequest) (*reservation.Reservation, error)
	Cancel(ctx context.Context, tenantID uuid.UUID, actor Actor, id int) (*reservation.Reservation, error)
	Delete(ctx context.Context, tenantID uuid.UUID, actor Actor, id int) error
}

type reservationUseCaseImpl struct {
	reservationRepo ReservationRepository
	stationRepo     StationRepository
	tagRepo         TagRepository
	gateway         ChargePointGateway
	notifier        Notifier
	clock           clock.Clock
}

func NewReservationUseCase(
	reservationRepo ReservationRepository,
	stationRepo StationRepository,
	tagRepo TagRepository,
	gateway ChargePointGateway,
	notifier Notifier,
	clock clock.Clock,
) ReservationCommands {
	return &reservationUseCaseImpl{
		reservationRepo: reservationRepo,
		stationRepo:     stationRepo,
		tagRepo:         tagRepo,
		gateway:         gateway,
		notifier:        notifier,
		clock:           clock,
	}
}

func (r *reservationUseCaseImpl) Create(ctx context.Context, tenantID uuid.UUID, actor Actor, req reqdto.UpsertReservationRequest) (*reservation.Reservation, error) {
	now := r.clock.Now()

	idTag, userID, err := r.resolveCredential(ctx, tenantID, req)
	if err != nil {
		return nil, err
	}

	if err := r.checkDuplicateID(ctx, tenantID, req.ID, idTag); err != nil {
		return nil, err
	}

	res, err := reservation.NewReservation(now, reservation.NewReservationParams{
		ID:                req.ID,
		ChargingStationID: req.ChargingStationID,
		ConnectorID:       req.ConnectorID,
		FromDate:          derefTime(req.FromDate),
		ToDate:            derefTime(req.ToDate),
		ExpiryDate:        req.ExpiryDate,
		ArrivalTime:       req.ArrivalTime,
		IdTag:             idTag,
		ParentIdTag:       req.ParentIdTag,
		UserID:            userID,
		CarID:             req.CarID,
		Type:              reservation.Type(req.Type),
		CreatedBy:         actor.ID,
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	if err := r.ensureConnectorFree(ctx, tenantID, res, now); err != nil {
		return nil, err
	}
	if err := r.checkCollisions(ctx, tenantID, res, now); err != nil {
		return nil, err
	}
	if res.Type() == reservation.TypeReserveNow {
		if err := r.checkSingleReserveNow(ctx, tenantID, res); err != nil {
			return nil, err
		}
	}

	// Remote call first, persistence second: a refused placement leaves
	// no partial state behind. Reservations that are not live yet are
	// placed physically by the promotion sweep instead.
	if res.Status() == reservation.StatusInProgress {
		if err := r.placeRemote(ctx, tenantID, res, now); err != nil {
			return nil, err
		}
	}

	if err := r.reservationRepo.Save(ctx, tenantID, res); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperation)
	}
	if err := r.bindConnector(ctx, tenantID, res); err != nil {
		return nil, err
	}

	r.notifier.ReservationCreated(ctx, tenantID, res)
	return res, nil
}

func (r *reservationUseCaseImpl) Update(ctx context.Context, tenantID uuid.UUID, actor Actor, id int, req reqdto.UpsertReservationRequest) (*reservation.Reservation, error) {
	now := r.clock.Now()

	current, err := r.findOwned(ctx, tenantID, actor, id)
	if err != nil {
		return nil, err
	}
	if current.Status().IsTerminal() && req.Status == "" {
		return nil, errs.Mark(
			errs.New(fmt.Sprintf("cannot modify a %s reservation", current.Status())),
			errs.ErrInvalidTransition)
	}

	idTag, userID, err := r.resolveCredential(ctx, tenantID, req)
	if err != nil {
		return nil, err
	}

	// Re-run creation validation on the new field values, then carry over
	// the original status and audit trail.
	validated, err := reservation.NewReservation(now, reservation.NewReservationParams{
		ID:                id,
		ChargingStationID: req.ChargingStationID,
		ConnectorID:       req.ConnectorID,
		FromDate:          derefTime(req.FromDate),
		ToDate:            derefTime(req.ToDate),
		ExpiryDate:        req.ExpiryDate,
		ArrivalTime:       req.ArrivalTime,
		IdTag:             idTag,
		ParentIdTag:       req.ParentIdTag,
		UserID:            userID,
		CarID:             req.CarID,
		Type:              reservation.Type(req.Type),
		CreatedBy:         current.Audit().CreatedBy,
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	audit := current.Audit()
	audit.Touch(actor.ID, now)
	updated := reservation.ReconstructReservation(
		id,
		validated.ChargingStationID(),
		validated.ConnectorID(),
		validated.Window(),
		validated.ExpiryDate(),
		validated.ArrivalTime(),
		validated.IdTag(),
		validated.ParentIdTag(),
		validated.UserID(),
		validated.CarID(),
		validated.Type(),
		current.Status(),
		audit,
	)

	if req.Status != "" && reservation.Status(req.Status) != current.Status() {
		target := reservation.Status(req.Status)
		if !target.IsValid() {
			return nil, errs.Mark(errs.New("unknown status "+req.Status), errs.ErrValidation)
		}
		if err := updated.TransitionTo(target, actor.ID, now); err != nil {
			return nil, errs.Mark(err, errs.ErrInvalidTransition)
		}
	}

	if err := r.checkCollisions(ctx, tenantID, updated, now); err != nil {
		return nil, err
	}
	if updated.Type() == reservation.TypeReserveNow && updated.IsActive() {
		if err := r.checkSingleReserveNow(ctx, tenantID, updated); err != nil {
			return nil, err
		}
	}

	// Moving stations releases the old physical reservation before the
	// new one is placed.
	previousStation := current.ChargingStationID()
	previousConnector := current.ConnectorID()
	stationMoved := updated.ChargingStationID() != previousStation || updated.ConnectorID() != previousConnector
	if stationMoved {
		r.cancelRemoteBestEffort(ctx, tenantID, previousStation, id)
		if err := r.stationRepo.ReleaseConnector(ctx, tenantID, previousStation, previousConnector, id); err != nil {
			return nil, errs.Mark(err, errs.ErrDatabaseOperation)
		}
		if err := r.ensureConnectorFree(ctx, tenantID, updated, now); err != nil {
			return nil, err
		}
	}

	if updated.Status() == reservation.StatusInProgress && (stationMoved || current.Status() != reservation.StatusInProgress) {
		if err := r.placeRemote(ctx, tenantID, updated, now); err != nil {
			return nil, err
		}
	}

	if err := r.reservationRepo.Save(ctx, tenantID, updated); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperation)
	}
	if updated.IsActive() {
		if err := r.bindConnector(ctx, tenantID, updated); err != nil {
			return nil, err
		}
	}

	if updated.Status() != current.Status() {
		r.notifier.ReservationStatusChanged(ctx, tenantID, updated)
	}
	return updated, nil
}

// Cancel moves the reservation to cancelled. An in-progress reservation is
// physically cancelled at the station first; a remote refusal leaves the
// reservation untouched and the call succeeds as a no-op.
func (r *reservationUseCaseImpl) Cancel(ctx context.Context, tenantID uuid.UUID, actor Actor, id int) (*reservation.Reservation, error) {
	now := r.clock.Now()

	res, err := r.findOwned(ctx, tenantID, actor, id)
	if err != nil {
		return nil, err
	}

	if res.Status() == reservation.StatusCancelled {
		return res, nil
	}
	if !reservation.CanTransition(res.Status(), reservation.StatusCancelled) {
		return nil, errs.Mark(
			errs.New(fmt.Sprintf("cannot cancel a %s reservation", res.Status())),
			errs.ErrInvalidTransition)
	}

	if res.Status() == reservation.StatusInProgress {
		accepted, err := r.cancelRemote(ctx, tenantID, res.ChargingStationID(), id)
		if err != nil {
			return nil, err
		}
		if !accepted {
			slog.Warn("charge point refused cancellation, reservation left unchanged",
				"tenant_id", tenantID, "reservation_id", id)
			return res, nil
		}
	}

	swapped, err := r.reservationRepo.TransitionStatus(ctx, tenantID, id, res.Status(), reservation.StatusCancelled, actor.ID, now)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperation)
	}
	if !swapped {
		return nil, errs.Mark(errs.New("reservation status changed concurrently"), errs.ErrInvalidTransition)
	}
	if err := res.TransitionTo(reservation.StatusCancelled, actor.ID, now); err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidTransition)
	}

	if err := r.stationRepo.ReleaseConnector(ctx, tenantID, res.ChargingStationID(), res.ConnectorID(), id); err != nil {
		slog.Warn("failed to release connector binding",
			"tenant_id", tenantID, "reservation_id", id, "error", err)
	}

	r.notifier.ReservationCancelled(ctx, tenantID, res)
	return res, nil
}

// Delete removes the reservation record. In-progress reservations must be
// accepted for cancellation by the station before the row goes away.
func (r *reservationUseCaseImpl) Delete(ctx context.Context, tenantID uuid.UUID, actor Actor, id int) error {
	res, err := r.findOwned(ctx, tenantID, actor, id)
	if err != nil {
		return err
	}

	if res.Status() == reservation.StatusInProgress {
		accepted, err := r.cancelRemote(ctx, tenantID, res.ChargingStationID(), id)
		if err != nil {
			return err
		}
		if !accepted {
			return errs.Mark(
				errs.New("charge point refused cancellation, reservation not deleted"),
				errs.ErrRemoteRejected)
		}
	}

	if err := r.reservationRepo.Delete(ctx, tenantID, id); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, errs.ErrNotFound)
		}
		return errs.Mark(err, errs.ErrDatabaseOperation)
	}
	if err := r.stationRepo.ReleaseConnector(ctx, tenantID, res.ChargingStationID(), res.ConnectorID(), id); err != nil {
		slog.Warn("failed to release connector binding",
			"tenant_id", tenantID, "reservation_id", id, "error", err)
	}
	return nil
}

// resolveCredential determines the reserving idTag. A visual tag id is
// resolved through the tag registry; a direct idTag must exist and be
// active. The owning user comes from the tag.
func (r *reservationUseCaseImpl) resolveCredential(ctx context.Context, tenantID uuid.UUID, req reqdto.UpsertReservationRequest) (string, *uuid.UUID, error) {
	var (
		t   *tag.Tag
		err error
	)
	switch {
	case req.GetIdTag() != "":
		t, err = r.tagRepo.FindByID(ctx, tenantID, req.GetIdTag())
	case req.GetVisualTagID() != "":
		t, err = r.tagRepo.FindByVisualID(ctx, tenantID, req.GetVisualTagID())
	default:
		return "", nil, errs.Mark(errs.New("either idTag or visualTagID is required"), errs.ErrValidation)
	}
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return "", nil, errs.Mark(err, errs.ErrNotFound)
		}
		return "", nil, errs.Mark(err, errs.ErrDatabaseOperation)
	}
	if !t.Active {
		return "", nil, errs.Mark(errs.New("tag "+t.ID+" is deactivated"), errs.ErrValidation)
	}
	return t.ID, t.UserID, nil
}

func (r *reservationUseCaseImpl) checkDuplicateID(ctx context.Context, tenantID uuid.UUID, id int, idTag string) error {
	existing, err := r.reservationRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil
		}
		return errs.Mark(err, errs.ErrDatabaseOperation)
	}
	if existing.IdTag() != idTag {
		return errs.Mark(
			errs.New(fmt.Sprintf("reservation %d already belongs to another credential", id)),
			errs.ErrAlreadyExists)
	}
	return nil
}

// ensureConnectorFree enforces the single-binding rule on the target
// connector. A binding whose reservation is gone or no longer live is
// stale and cleared in place; a live foreign binding rejects the request.
func (r *reservationUseCaseImpl) ensureConnectorFree(ctx context.Context, tenantID uuid.UUID, res *reservation.Reservation, now time.Time) error {
	st, err := r.stationRepo.FindByID(ctx, tenantID, res.ChargingStationID())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, errs.ErrNotFound)
		}
		return errs.Mark(err, errs.ErrDatabaseOperation)
	}
	if st.Inactive {
		return errs.Mark(errs.New("charging station "+st.ID+" is inactive"), errs.ErrValidation)
	}

	conn, err := st.Connector(res.ConnectorID())
	if err != nil {
		return errs.Mark(err, errs.ErrNotFound)
	}
	if !conn.IsBound() || conn.IsBoundTo(res.ID()) {
		return nil
	}

	boundID := *conn.ReservationID
	bound, err := r.reservationRepo.FindByID(ctx, tenantID, boundID)
	switch {
	case err != nil && infra.IsKind(err, infra.KindNotFound):
		// Dangling reference, clear it below.
	case err != nil:
		return errs.Mark(err, errs.ErrDatabaseOperation)
	case bound.IsActive() && !bound.HasExpired(now):
		return errs.Mark(
			errs.New(fmt.Sprintf("connector %d is held by reservation %d", res.ConnectorID(), boundID)),
			errs.ErrConnectorOccupied)
	}

	if err := r.stationRepo.ReleaseConnector(ctx, tenantID, res.ChargingStationID(), res.ConnectorID(), boundID); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperation)
	}
	return nil
}

// checkCollisions rejects the reservation when another live reservation
// claims an intersecting effective window on the same connector. The query
// is a coarse prefilter; the window algebra decides.
func (r *reservationUseCaseImpl) checkCollisions(ctx context.Context, tenantID uuid.UUID, res *reservation.Reservation, now time.Time) error {
	candidates, err := r.reservationRepo.FindCollisions(ctx, tenantID, res, now)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperation)
	}
	window := res.EffectiveWindow(now)
	colliding := 0
	for _, c := range candidates {
		if window.Overlaps(c.EffectiveWindow(now)) {
			colliding++
		}
	}
	if colliding > 0 {
		return errs.Mark(
			errs.New(fmt.Sprintf("%d colliding reservations on connector %d", colliding, res.ConnectorID())),
			errs.ErrCollision)
	}
	return nil
}

func (r *reservationUseCaseImpl) checkSingleReserveNow(ctx context.Context, tenantID uuid.UUID, res *reservation.Reservation) error {
	exists, err := r.reservationRepo.ExistsActiveReserveNow(ctx, tenantID, res.IdTag(), res.UserID(), res.ID())
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperation)
	}
	if exists {
		return errs.Mark(
			errs.New("an active reserve-now reservation already exists for this user"),
			errs.ErrMultipleReserveNow)
	}
	return nil
}

func (r *reservationUseCaseImpl) placeRemote(ctx context.Context, tenantID uuid.UUID, res *reservation.Reservation, now time.Time) error {
	client, err := r.gateway.ClientFor(ctx, tenantID, res.ChargingStationID())
	if err != nil {
		return err
	}
	status, err := client.ReserveNow(ctx, ReserveNowRequest{
		ConnectorID:   res.ConnectorID(),
		ExpiryDate:    res.EffectiveWindow(now).To(),
		IdTag:         res.IdTag(),
		ParentIdTag:   res.ParentIdTag(),
		ReservationID: res.ID(),
	})
	if err != nil {
		return errs.Mark(err, errs.ErrBackendUnreachable)
	}
	return remoteStatusError(status)
}

func (r *reservationUseCaseImpl) cancelRemote(ctx context.Context, tenantID uuid.UUID, stationID string, reservationID int) (bool, error) {
	client, err := r.gateway.ClientFor(ctx, tenantID, stationID)
	if err != nil {
		return false, err
	}
	status, err := client.CancelReservation(ctx, reservationID)
	if err != nil {
		return false, errs.Mark(err, errs.ErrBackendUnreachable)
	}
	return status == RemoteAccepted, nil
}

// cancelRemoteBestEffort is used when abandoning a station during a move.
// The old station may already be offline; that must not block the update.
func (r *reservationUseCaseImpl) cancelRemoteBestEffort(ctx context.Context, tenantID uuid.UUID, stationID string, reservationID int) {
	if _, err := r.cancelRemote(ctx, tenantID, stationID, reservationID); err != nil {
		slog.Warn("failed to cancel reservation on previous station",
			"tenant_id", tenantID, "station_id", stationID,
			"reservation_id", reservationID, "error", err)
	}
}

func (r *reservationUseCaseImpl) bindConnector(ctx context.Context, tenantID uuid.UUID, res *reservation.Reservation) error {
	err := r.stationRepo.BindConnector(ctx, tenantID, res.ChargingStationID(), res.ConnectorID(), res.ID())
	if err != nil {
		if infra.IsKind(err, infra.KindStaleUpdate) {
			return errs.Mark(err, errs.ErrConnectorOccupied)
		}
		return errs.Mark(err, errs.ErrDatabaseOperation)
	}
	return nil
}

func (r *reservationUseCaseImpl) findOwned(ctx context.Context, tenantID uuid.UUID, actor Actor, id int) (*reservation.Reservation, error) {
	res, err := r.reservationRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperation)
	}
	if !actor.IsAdmin && res.UserID() != nil && *res.UserID() != actor.ID {
		return nil, errs.Mark(errs.New("reservation belongs to another user"), errs.ErrAuthorization)
	}
	return res, nil
}

func remoteStatusError(status RemoteStatus) error {
	switch status {
	case RemoteAccepted:
		return nil
	case RemoteRejected:
		return errs.Mark(errs.New("charge point rejected the reservation"), errs.ErrRemoteRejected)
	case RemoteFaulted:
		return errs.Mark(errs.New("charge point reported a fault"), errs.ErrRemoteFaulted)
	case RemoteOccupied:
		return errs.Mark(errs.New("charge point reported the connector occupied"), errs.ErrRemoteOccupied)
	case RemoteUnavailable:
		return errs.Mark(errs.New("charge point reported the connector unavailable"), errs.ErrRemoteUnavailable)
	default:
		return errs.New("unknown remote status " + string(status))
	}
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
