package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JulianHBuecher/ev-server/internal/domain/reservation"
	"github.com/JulianHBuecher/ev-server/internal/infra"
)

// ReservationRepository is the tenant-scoped write side of the reservation
// collection. Status transitions go through TransitionStatus, which is an
// atomic compare-and-set so concurrent flows (user calls, sweeps) cannot
// both win.
type ReservationRepository struct {
	db *pgxpool.Pool
}

func NewReservationRepository(db *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{db: db}
}

const reservationColumns = `
	id, charging_station_id, connector_id, from_ts, to_ts, expiry_ts,
	arrival_time, id_tag, parent_id_tag, user_id, car_id, type, status,
	created_by, created_on, last_changed_by, last_changed_on`

func (r *ReservationRepository) FindByID(ctx context.Context, tenantID uuid.UUID, id int) (*reservation.Reservation, error) {
	row := r.db.QueryRow(ctx, `
		SELECT`+reservationColumns+`
		FROM reservations
		WHERE tenant_id = $1 AND id = $2`, tenantID, id)

	res, err := scanReservation(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "reservation not found", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to find reservation", err)
	}
	return res, nil
}

// FindCollisions returns the live reservations on the candidate's connector
// whose effective window intersects the candidate's. The candidate itself
// is excluded so updates do not collide with their own record. Reservations
// without an explicit window fall back to [created_on, expiry_ts].
func (r *ReservationRepository) FindCollisions(ctx context.Context, tenantID uuid.UUID, candidate *reservation.Reservation, now time.Time) ([]*reservation.Reservation, error) {
	window := candidate.EffectiveWindow(now)

	rows, err := r.db.Query(ctx, `
		SELECT`+reservationColumns+`
		FROM reservations
		WHERE tenant_id = $1
		  AND charging_station_id = $2
		  AND connector_id = $3
		  AND id <> $4
		  AND status = ANY($5)
		  AND COALESCE(from_ts, created_on) < $7
		  AND COALESCE(to_ts, expiry_ts) > $6`,
		tenantID,
		candidate.ChargingStationID(),
		candidate.ConnectorID(),
		candidate.ID(),
		activeStatusStrings(),
		window.From(),
		window.To(),
	)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to query colliding reservations", err)
	}
	defer rows.Close()

	return collectReservations(rows)
}

// ExistsActiveReserveNow reports whether the user (or, for anonymous tags,
// the credential) already holds an in-progress reserve-now reservation
// other than excludeID.
func (r *ReservationRepository) ExistsActiveReserveNow(ctx context.Context, tenantID uuid.UUID, idTag string, userID *uuid.UUID, excludeID int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM reservations
			WHERE tenant_id = $1
			  AND type = $2
			  AND status = $3
			  AND id <> $4
			  AND (id_tag = $5 OR ($6::uuid IS NOT NULL AND user_id = $6))
		)`,
		tenantID,
		reservation.TypeReserveNow.String(),
		reservation.StatusInProgress.String(),
		excludeID,
		idTag,
		userID,
	).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr(infra.KindDBFailure, "failed to check active reserve-now reservations", err)
	}
	return exists, nil
}

// Save upserts the reservation by its tenant-scoped id.
func (r *ReservationRepository) Save(ctx context.Context, tenantID uuid.UUID, res *reservation.Reservation) error {
	var fromTS, toTS *time.Time
	if w := res.Window(); w != nil {
		f, t := w.From(), w.To()
		fromTS, toTS = &f, &t
	}
	audit := res.Audit()

	_, err := r.db.Exec(ctx, `
		INSERT INTO reservations (
			tenant_id, id, charging_station_id, connector_id, from_ts, to_ts,
			expiry_ts, arrival_time, id_tag, parent_id_tag, user_id, car_id,
			type, status, created_by, created_on, last_changed_by, last_changed_on
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
		ON CONFLICT (tenant_id, id) DO UPDATE SET
			charging_station_id = EXCLUDED.charging_station_id,
			connector_id = EXCLUDED.connector_id,
			from_ts = EXCLUDED.from_ts,
			to_ts = EXCLUDED.to_ts,
			expiry_ts = EXCLUDED.expiry_ts,
			arrival_time = EXCLUDED.arrival_time,
			id_tag = EXCLUDED.id_tag,
			parent_id_tag = EXCLUDED.parent_id_tag,
			user_id = EXCLUDED.user_id,
			car_id = EXCLUDED.car_id,
			type = EXCLUDED.type,
			status = EXCLUDED.status,
			last_changed_by = EXCLUDED.last_changed_by,
			last_changed_on = EXCLUDED.last_changed_on`,
		tenantID, res.ID(), res.ChargingStationID(), res.ConnectorID(), fromTS, toTS,
		res.ExpiryDate(), res.ArrivalTime(), res.IdTag(), nullableString(res.ParentIdTag()),
		res.UserID(), res.CarID(), res.Type().String(), res.Status().String(),
		audit.CreatedBy, audit.CreatedOn, audit.LastChangedBy, audit.LastChangedOn,
	)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to save reservation", err)
	}
	return nil
}

func (r *ReservationRepository) Delete(ctx context.Context, tenantID uuid.UUID, id int) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM reservations WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to delete reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "reservation not found", nil)
	}
	return nil
}

// TransitionStatus applies a compare-and-set status change in one round
// trip. It returns false when the reservation no longer carries the
// expected status, which callers treat as "someone else got there first".
func (r *ReservationRepository) TransitionStatus(ctx context.Context, tenantID uuid.UUID, id int, from, to reservation.Status, by uuid.UUID, at time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE reservations
		SET status = $1, last_changed_by = $2, last_changed_on = $3
		WHERE tenant_id = $4 AND id = $5 AND status = $6`,
		to.String(), by, at, tenantID, id, from.String())
	if err != nil {
		return false, infra.WrapRepoErr(infra.KindDBFailure, "failed to transition reservation status", err)
	}
	return tag.RowsAffected() > 0, nil
}

// FindExpired returns the live reservations whose expiry deadline has
// passed.
func (r *ReservationRepository) FindExpired(ctx context.Context, tenantID uuid.UUID, now time.Time) ([]*reservation.Reservation, error) {
	rows, err := r.db.Query(ctx, `
		SELECT`+reservationColumns+`
		FROM reservations
		WHERE tenant_id = $1 AND status = ANY($2) AND expiry_ts <= $3
		ORDER BY expiry_ts`, tenantID, activeStatusStrings(), now)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to query expired reservations", err)
	}
	defer rows.Close()
	return collectReservations(rows)
}

// FindUpcoming returns scheduled reservations whose window starts inside
// [from, to).
func (r *ReservationRepository) FindUpcoming(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]*reservation.Reservation, error) {
	rows, err := r.db.Query(ctx, `
		SELECT`+reservationColumns+`
		FROM reservations
		WHERE tenant_id = $1 AND status = $2 AND from_ts >= $3 AND from_ts < $4
		ORDER BY from_ts`, tenantID, reservation.StatusScheduled.String(), from, to)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to query upcoming reservations", err)
	}
	defer rows.Close()
	return collectReservations(rows)
}

func (r *ReservationRepository) FindInProgress(ctx context.Context, tenantID uuid.UUID) ([]*reservation.Reservation, error) {
	rows, err := r.db.Query(ctx, `
		SELECT`+reservationColumns+`
		FROM reservations
		WHERE tenant_id = $1 AND status = $2
		ORDER BY id`, tenantID, reservation.StatusInProgress.String())
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to query in-progress reservations", err)
	}
	defer rows.Close()
	return collectReservations(rows)
}

// FindUnmetArrivals returns in-progress reserve-now reservations whose
// expected arrival lies at or before the cutoff.
func (r *ReservationRepository) FindUnmetArrivals(ctx context.Context, tenantID uuid.UUID, cutoff time.Time) ([]*reservation.Reservation, error) {
	rows, err := r.db.Query(ctx, `
		SELECT`+reservationColumns+`
		FROM reservations
		WHERE tenant_id = $1 AND status = $2 AND type = $3
		  AND arrival_time IS NOT NULL AND arrival_time <= $4
		ORDER BY arrival_time`,
		tenantID, reservation.StatusInProgress.String(), reservation.TypeReserveNow.String(), cutoff)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to query unmet reservations", err)
	}
	defer rows.Close()
	return collectReservations(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row rowScanner) (*reservation.Reservation, error) {
	var (
		id            int
		stationID     string
		connectorID   int
		fromTS, toTS  *time.Time
		expiryTS      time.Time
		arrivalTime   *time.Time
		idTag         string
		parentIdTag   *string
		userID, carID *uuid.UUID
		typ, status   string
		createdBy     uuid.UUID
		createdOn     time.Time
		lastChangedBy uuid.UUID
		lastChangedOn time.Time
	)
	err := row.Scan(
		&id, &stationID, &connectorID, &fromTS, &toTS, &expiryTS,
		&arrivalTime, &idTag, &parentIdTag, &userID, &carID, &typ, &status,
		&createdBy, &createdOn, &lastChangedBy, &lastChangedOn,
	)
	if err != nil {
		return nil, err
	}

	var window *reservation.TimeWindow
	if fromTS != nil && toTS != nil {
		w, werr := reservation.NewTimeWindow(*fromTS, *toTS)
		if werr != nil {
			return nil, werr
		}
		window = &w
	}
	parent := ""
	if parentIdTag != nil {
		parent = *parentIdTag
	}

	return reservation.ReconstructReservation(
		id, stationID, connectorID, window, expiryTS, arrivalTime,
		idTag, parent, userID, carID,
		reservation.Type(typ), reservation.Status(status),
		reservation.Audit{
			CreatedBy:     createdBy,
			CreatedOn:     createdOn,
			LastChangedBy: lastChangedBy,
			LastChangedOn: lastChangedOn,
		},
	), nil
}

func collectReservations(rows pgx.Rows) ([]*reservation.Reservation, error) {
	var result []*reservation.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan reservation row", err)
		}
		result = append(result, res)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to iterate reservation rows", err)
	}
	return result, nil
}

func activeStatusStrings() []string {
	statuses := reservation.ActiveStatuses()
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = s.String()
	}
	return out
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
