package queries

import (
	"context"

	"resource-booking/internal/infra"

	"github.com/google/uuid"
)

type ResourceReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ResourceView, error)
	FindActive(ctx context.Context) ([]*ResourceView, error)
	FindAll(ctx context.Context) ([]*ResourceView, error)
}

type ResourceQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ResourceView, error)
	ListActive(ctx context.Context) ([]*ResourceView, error)
	ListAll(ctx context.Context) ([]*ResourceView, error)
}

type resourceQueriesImpl struct {
	store ResourceReadStore
}

func NewResourceQueries(store ResourceReadStore) ResourceQueries {
	return &resourceQueriesImpl{store: store}
}

func (q *resourceQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ResourceView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *resourceQueriesImpl) ListActive(ctx context.Context) ([]*ResourceView, error) {
	return q.store.FindActive(ctx)
}

func (q *resourceQueriesImpl) ListAll(ctx context.Context) ([]*ResourceView, error) {
	return q.store.FindAll(ctx)
}
