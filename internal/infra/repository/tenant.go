package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JulianHBuecher/ev-server/internal/infra"
)

// Tenant is the slim projection the sweep scheduler iterates over.
type Tenant struct {
	ID                 uuid.UUID
	Name               string
	ReservationEnabled bool
}

type TenantRepository struct {
	db *pgxpool.Pool
}

func NewTenantRepository(db *pgxpool.Pool) *TenantRepository {
	return &TenantRepository{db: db}
}

// ListActive returns every tenant, including those with the reservation
// component switched off; the sweep engine skips the latter.
func (r *TenantRepository) ListActive(ctx context.Context) ([]Tenant, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, reservation_enabled
		FROM tenants
		ORDER BY name`)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to query tenants", err)
	}
	defer rows.Close()

	var tenants []Tenant
	for rows.Next() {
		var t Tenant
		if err := rows.Scan(&t.ID, &t.Name, &t.ReservationEnabled); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan tenant row", err)
		}
		tenants = append(tenants, t)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to iterate tenant rows", err)
	}
	return tenants, nil
}
