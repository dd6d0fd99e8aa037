package readstore

import (
	"context"

	"resource-booking/internal/infra"
	"resource-booking/internal/infra/db"
	"resource-booking/internal/pkg/pgconv"
	"resource-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ResourceReadStore struct {
	db db.DBTX
}

func NewResourceReadStore(dbtx db.DBTX) *ResourceReadStore {
	return &ResourceReadStore{db: dbtx}
}

func (r *ResourceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ResourceView, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, name, description, active, created_at, updated_at
		FROM resources
		WHERE id = $1`,
		id,
	)

	view, err := scanResourceView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("resource not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find resource by ID", err)
	}
	return view, nil
}

func (r *ResourceReadStore) FindActive(ctx context.Context) ([]*queries.ResourceView, error) {
	return r.findAll(ctx, `
		SELECT id, name, description, active, created_at, updated_at
		FROM resources
		WHERE active
		ORDER BY name ASC`)
}

func (r *ResourceReadStore) FindAll(ctx context.Context) ([]*queries.ResourceView, error) {
	return r.findAll(ctx, `
		SELECT id, name, description, active, created_at, updated_at
		FROM resources
		ORDER BY name ASC`)
}

func (r *ResourceReadStore) findAll(ctx context.Context, query string) ([]*queries.ResourceView, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list resources", err)
	}
	defer rows.Close()

	var result []*queries.ResourceView
	for rows.Next() {
		view, err := scanResourceView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan resource row", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate resource rows", err)
	}
	return result, nil
}

func scanResourceView(row rowScanner) (*queries.ResourceView, error) {
	var (
		view        queries.ResourceView
		description pgtype.Text
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
	)

	err := row.Scan(&view.ID, &view.Name, &description, &view.Active, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	view.Description = pgconv.StringPtrFromPgtype(description)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &view, nil
}
