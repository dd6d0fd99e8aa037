package resource

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrEmptyName = errors.New("resource name cannot be empty")

// Resource is a schedulable entity. It is never deleted, only deactivated;
// an inactive resource rejects new bookings but keeps its history.
type Resource struct {
	id          uuid.UUID
	name        string
	description string
	active      bool
	createdAt   time.Time
	updatedAt   time.Time
}

func NewResource(name, description string, active bool) (*Resource, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Resource{
		id:          uuid.New(),
		name:        name,
		description: description,
		active:      active,
	}, nil
}

func ReconstructResource(id uuid.UUID, name, description string, active bool, createdAt, updatedAt time.Time) *Resource {
	return &Resource{
		id:          id,
		name:        name,
		description: description,
		active:      active,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (r *Resource) Update(name, description string, active bool) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	r.name = name
	r.description = description
	r.active = active
	return nil
}

func (r *Resource) ID() uuid.UUID        { return r.id }
func (r *Resource) Name() string         { return r.name }
func (r *Resource) Description() string  { return r.description }
func (r *Resource) IsActive() bool       { return r.active }
func (r *Resource) CreatedAt() time.Time { return r.createdAt }
func (r *Resource) UpdatedAt() time.Time { return r.updatedAt }
