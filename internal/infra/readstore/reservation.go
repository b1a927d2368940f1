package readstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JulianHBuecher/ev-server/internal/infra"
	"github.com/JulianHBuecher/ev-server/internal/usecase/queries"
)

// ReservationReadStore serves the listing and detail views. It joins the
// write-side tables directly; reads never go through the domain entities.
type ReservationReadStore struct {
	db *pgxpool.Pool
}

func NewReservationReadStore(db *pgxpool.Pool) *ReservationReadStore {
	return &ReservationReadStore{db: db}
}

const reservationViewSelect = `
	SELECT r.id, r.charging_station_id, cs.site_area_id, r.connector_id,
	       r.from_ts, r.to_ts, r.expiry_ts, r.arrival_time,
	       r.id_tag, t.visual_id, r.parent_id_tag,
	       r.user_id, u.name, r.car_id, c.name,
	       r.type, r.status, r.created_on, r.last_changed_on
	FROM reservations r
	LEFT JOIN charging_stations cs
	       ON cs.tenant_id = r.tenant_id AND cs.id = r.charging_station_id
	LEFT JOIN tags t ON t.tenant_id = r.tenant_id AND t.id = r.id_tag
	LEFT JOIN users u ON u.tenant_id = r.tenant_id AND u.id = r.user_id
	LEFT JOIN cars c ON c.tenant_id = r.tenant_id AND c.id = r.car_id`

func (s *ReservationReadStore) FindByID(ctx context.Context, tenantID uuid.UUID, id int) (*queries.ReservationView, error) {
	row := s.db.QueryRow(ctx,
		reservationViewSelect+` WHERE r.tenant_id = $1 AND r.id = $2`,
		tenantID, id)

	view, err := scanReservationView(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "reservation not found", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to find reservation view", err)
	}
	return view, nil
}

func (s *ReservationReadStore) Search(ctx context.Context, tenantID uuid.UUID, filter queries.ReservationFilter) ([]*queries.ReservationView, error) {
	where, args := buildReservationFilter(tenantID, filter)

	query := reservationViewSelect + " WHERE " + where + orderClause(filter)
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to search reservations", err)
	}
	defer rows.Close()

	result := make([]*queries.ReservationView, 0)
	for rows.Next() {
		view, err := scanReservationView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan reservation view", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to iterate reservation views", err)
	}
	return result, nil
}

func (s *ReservationReadStore) Count(ctx context.Context, tenantID uuid.UUID, filter queries.ReservationFilter) (int64, error) {
	where, args := buildReservationFilter(tenantID, filter)

	var count int64
	err := s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM reservations r WHERE `+where,
		args...,
	).Scan(&count)
	if err != nil {
		return 0, infra.WrapRepoErr(infra.KindDBFailure, "failed to count reservations", err)
	}
	return count, nil
}

// buildReservationFilter assembles the WHERE clause shared by Search and
// Count. Conditions only reference the reservations table (aliased r) so
// the count query can skip the joins.
func buildReservationFilter(tenantID uuid.UUID, filter queries.ReservationFilter) (string, []any) {
	conds := []string{"r.tenant_id = $1"}
	args := []any{tenantID}

	add := func(cond string, value any) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.StationID != nil {
		add("r.charging_station_id = $%d", *filter.StationID)
	}
	if filter.ConnectorID != nil {
		add("r.connector_id = $%d", *filter.ConnectorID)
	}
	if len(filter.Statuses) > 0 {
		add("r.status = ANY($%d)", filter.Statuses)
	}
	if filter.Type != nil {
		add("r.type = $%d", *filter.Type)
	}
	if filter.UserID != nil {
		add("r.user_id = $%d", *filter.UserID)
	}
	if filter.CarID != nil {
		add("r.car_id = $%d", *filter.CarID)
	}
	if filter.From != nil {
		add("COALESCE(r.to_ts, r.expiry_ts) > $%d", *filter.From)
	}
	if filter.To != nil {
		add("COALESCE(r.from_ts, r.created_on) < $%d", *filter.To)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+search+"%")
		conds = append(conds, fmt.Sprintf(
			"(r.charging_station_id ILIKE $%d OR r.id_tag ILIKE $%d)",
			len(args), len(args)))
	}

	return strings.Join(conds, " AND "), args
}

// sortColumns maps exposed sort fields to columns. Anything else falls
// back to expiry_ts so user input never reaches the SQL text.
var sortColumns = map[string]string{
	"id":         "r.id",
	"fromDate":   "r.from_ts",
	"toDate":     "r.to_ts",
	"expiryDate": "r.expiry_ts",
	"status":     "r.status",
	"createdOn":  "r.created_on",
}

func orderClause(filter queries.ReservationFilter) string {
	column, ok := sortColumns[filter.SortField]
	if !ok {
		column = "r.expiry_ts"
	}
	direction := "ASC"
	if filter.SortDescending {
		direction = "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s %s, r.id %s", column, direction, direction)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservationView(row rowScanner) (*queries.ReservationView, error) {
	var v queries.ReservationView
	err := row.Scan(
		&v.ID, &v.ChargingStationID, &v.SiteAreaID, &v.ConnectorID,
		&v.FromDate, &v.ToDate, &v.ExpiryDate, &v.ArrivalTime,
		&v.IdTag, &v.VisualTagID, &v.ParentIdTag,
		&v.UserID, &v.UserName, &v.CarID, &v.CarName,
		&v.Type, &v.Status, &v.CreatedOn, &v.LastChangedOn,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
