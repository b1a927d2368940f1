package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JulianHBuecher/ev-server/internal/domain/tag"
	"github.com/JulianHBuecher/ev-server/internal/infra"
)

type TagRepository struct {
	db *pgxpool.Pool
}

func NewTagRepository(db *pgxpool.Pool) *TagRepository {
	return &TagRepository{db: db}
}

func (r *TagRepository) FindByID(ctx context.Context, tenantID uuid.UUID, id string) (*tag.Tag, error) {
	return r.findOne(ctx, `
		SELECT id, visual_id, user_id, active
		FROM tags
		WHERE tenant_id = $1 AND id = $2`, tenantID, id)
}

// FindByVisualID resolves the human-facing badge identifier to the
// credential the charge point authorizes against.
func (r *TagRepository) FindByVisualID(ctx context.Context, tenantID uuid.UUID, visualID string) (*tag.Tag, error) {
	return r.findOne(ctx, `
		SELECT id, visual_id, user_id, active
		FROM tags
		WHERE tenant_id = $1 AND visual_id = $2`, tenantID, visualID)
}

func (r *TagRepository) findOne(ctx context.Context, query string, args ...any) (*tag.Tag, error) {
	var t tag.Tag
	err := r.db.QueryRow(ctx, query, args...).Scan(&t.ID, &t.VisualID, &t.UserID, &t.Active)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "tag not found", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to find tag", err)
	}
	return &t, nil
}
