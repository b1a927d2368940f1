package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JulianHBuecher/ev-server/internal/domain/station"
	"github.com/JulianHBuecher/ev-server/internal/infra"
)

// StationRepository serves charging stations and their connector bindings.
// Binding mutations are guarded by the known reservation id so concurrent
// flows cannot clobber a binding created by a different reservation.
type StationRepository struct {
	db *pgxpool.Pool
}

func NewStationRepository(db *pgxpool.Pool) *StationRepository {
	return &StationRepository{db: db}
}

func (r *StationRepository) FindByID(ctx context.Context, tenantID uuid.UUID, stationID string) (*station.ChargingStation, error) {
	var s station.ChargingStation
	err := r.db.QueryRow(ctx, `
		SELECT id, site_area_id, inactive
		FROM charging_stations
		WHERE tenant_id = $1 AND id = $2`, tenantID, stationID).
		Scan(&s.ID, &s.SiteAreaID, &s.Inactive)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "charging station not found", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to find charging station", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT connector_id, status, reservation_id
		FROM connectors
		WHERE tenant_id = $1 AND charging_station_id = $2
		ORDER BY connector_id`, tenantID, stationID)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to query connectors", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c station.Connector
		var status string
		if err := rows.Scan(&c.ID, &status, &c.ReservationID); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan connector row", err)
		}
		c.Status = station.ConnectorStatus(status)
		s.Connectors = append(s.Connectors, c)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to iterate connector rows", err)
	}
	return &s, nil
}

// BindConnector points the connector at the reservation. The guard accepts
// an unbound connector or a rebind of the same reservation.
func (r *StationRepository) BindConnector(ctx context.Context, tenantID uuid.UUID, stationID string, connectorID, reservationID int) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE connectors
		SET reservation_id = $1, status = $2
		WHERE tenant_id = $3 AND charging_station_id = $4 AND connector_id = $5
		  AND (reservation_id IS NULL OR reservation_id = $1)`,
		reservationID, string(station.ConnectorReserved), tenantID, stationID, connectorID)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to bind connector", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindStaleUpdate, "connector is bound to another reservation", nil)
	}
	return nil
}

// ReleaseConnector clears the binding only while it still points at the
// given reservation. Releasing an already-released connector is a no-op.
func (r *StationRepository) ReleaseConnector(ctx context.Context, tenantID uuid.UUID, stationID string, connectorID, reservationID int) error {
	_, err := r.db.Exec(ctx, `
		UPDATE connectors
		SET reservation_id = NULL, status = $1
		WHERE tenant_id = $2 AND charging_station_id = $3 AND connector_id = $4
		  AND reservation_id = $5`,
		string(station.ConnectorAvailable), tenantID, stationID, connectorID, reservationID)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to release connector", err)
	}
	return nil
}

// UpdateConnectorStatus records an inbound StatusNotification. Unknown
// connectors are ignored; stations may report connector 0 for the unit
// itself.
func (r *StationRepository) UpdateConnectorStatus(ctx context.Context, tenantID uuid.UUID, stationID string, connectorID int, status station.ConnectorStatus) error {
	_, err := r.db.Exec(ctx, `
		UPDATE connectors
		SET status = $1
		WHERE tenant_id = $2 AND charging_station_id = $3 AND connector_id = $4`,
		string(status), tenantID, stationID, connectorID)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to update connector status", err)
	}
	return nil
}

// ConnectorStatus returns the last status the charge point reported for a
// connector.
func (r *StationRepository) ConnectorStatus(ctx context.Context, tenantID uuid.UUID, stationID string, connectorID int) (station.ConnectorStatus, error) {
	var status string
	err := r.db.QueryRow(ctx, `
		SELECT status FROM connectors
		WHERE tenant_id = $1 AND charging_station_id = $2 AND connector_id = $3`,
		tenantID, stationID, connectorID).Scan(&status)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", infra.WrapRepoErr(infra.KindNotFound, "connector not found", err)
		}
		return "", infra.WrapRepoErr(infra.KindDBFailure, "failed to query connector status", err)
	}
	return station.ConnectorStatus(status), nil
}
