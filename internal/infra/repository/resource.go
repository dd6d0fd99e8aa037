package repository

import (
	"context"

	"resource-booking/internal/domain/resource"
	"resource-booking/internal/infra"
	"resource-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ResourceRepository struct {
	pool *pgxpool.Pool
}

func NewResourceRepository(pool *pgxpool.Pool) *ResourceRepository {
	return &ResourceRepository{pool: pool}
}

func (r *ResourceRepository) Create(ctx context.Context, res *resource.Resource) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO resources (id, name, description, active)
		VALUES ($1, $2, $3, $4)`,
		res.ID(), res.Name(), res.Description(), res.IsActive(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create resource", err)
	}
	return nil
}

func (r *ResourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	var (
		resourceID  uuid.UUID
		name        string
		description string
		active      bool
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
	)

	err := r.pool.QueryRow(ctx, `
		SELECT id, name, description, active, created_at, updated_at
		FROM resources
		WHERE id = $1`,
		id,
	).Scan(&resourceID, &name, &description, &active, &createdAt, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("resource not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find resource by ID", err)
	}

	return resource.ReconstructResource(
		resourceID, name, description, active,
		pgconv.TimeFromPgtype(createdAt), pgconv.TimeFromPgtype(updatedAt),
	), nil
}

func (r *ResourceRepository) Update(ctx context.Context, res *resource.Resource) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE resources
		SET name = $2, description = $3, active = $4, updated_at = now()
		WHERE id = $1`,
		res.ID(), res.Name(), res.Description(), res.IsActive(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update resource", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("resource not found", nil, infra.KindNotFound)
	}
	return nil
}
