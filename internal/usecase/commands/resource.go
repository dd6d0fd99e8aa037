package commands

import (
	"context"

	"resource-booking/internal/domain/resource"
	"resource-booking/internal/infra"
	"resource-booking/internal/pkg/errs"
	"resource-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

var ErrInvalidResourceName = errs.New("invalid resource name")

type CreateResourceParams struct {
	Name        string
	Description string
	Active      bool
}

type UpdateResourceParams struct {
	Name        string
	Description string
	Active      bool
}

type ResourceRepository interface {
	Create(ctx context.Context, r *resource.Resource) error
	FindByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error)
	Update(ctx context.Context, r *resource.Resource) error
}

type ResourceCommands interface {
	CreateResource(ctx context.Context, params CreateResourceParams) (*queries.ResourceView, error)
	UpdateResource(ctx context.Context, id uuid.UUID, params UpdateResourceParams) (*queries.ResourceView, error)
}

type resourceCommandsImpl struct {
	resourceRepo ResourceRepository
	resourceRead ResourceReader
}

func NewResourceCommands(resourceRepo ResourceRepository, resourceRead ResourceReader) ResourceCommands {
	return &resourceCommandsImpl{
		resourceRepo: resourceRepo,
		resourceRead: resourceRead,
	}
}

func (c *resourceCommandsImpl) CreateResource(ctx context.Context, params CreateResourceParams) (*queries.ResourceView, error) {
	entity, err := resource.NewResource(params.Name, params.Description, params.Active)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidResourceName)
	}

	if err := c.resourceRepo.Create(ctx, entity); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	view, err := c.resourceRead.FindByID(ctx, entity.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (c *resourceCommandsImpl) UpdateResource(ctx context.Context, id uuid.UUID, params UpdateResourceParams) (*queries.ResourceView, error) {
	entity, err := c.resourceRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := entity.Update(params.Name, params.Description, params.Active); err != nil {
		return nil, errs.Mark(err, ErrInvalidResourceName)
	}

	if err := c.resourceRepo.Update(ctx, entity); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	view, err := c.resourceRead.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}
