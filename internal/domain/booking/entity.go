package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotCancelable = errors.New("only active bookings can be cancelled")
	ErrNotOwner      = errors.New("bookings can only be cancelled by their owner")
)

// Actor is the pre-verified caller identity. The domain never authenticates;
// it only authorizes against this pair.
type Actor struct {
	ID      uuid.UUID
	IsAdmin bool
}

type Booking struct {
	id         uuid.UUID
	resourceID uuid.UUID
	userID     uuid.UUID
	slot       TimeSlot
	status     Status
	note       Note
	createdAt  time.Time
	updatedAt  time.Time
}

func NewBooking(resourceID, userID uuid.UUID, slot TimeSlot, note Note) *Booking {
	return &Booking{
		id:         uuid.New(),
		resourceID: resourceID,
		userID:     userID,
		slot:       slot,
		status:     StatusActive,
		note:       note,
	}
}

func ReconstructBooking(
	id, resourceID, userID uuid.UUID,
	slot TimeSlot,
	status Status,
	note Note,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:         id,
		resourceID: resourceID,
		userID:     userID,
		slot:       slot,
		status:     status,
		note:       note,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// CancelableBy is the single authorization gate for cancellation: the owner
// or an administrator. Both the self-cancel and admin-cancel paths go
// through it.
func (b *Booking) CancelableBy(actor Actor) bool {
	return actor.IsAdmin || actor.ID == b.userID
}

// Cancel transitions ACTIVE -> CANCELLED. CANCELLED is terminal; a second
// cancel fails regardless of who asks.
func (b *Booking) Cancel(actor Actor) error {
	if !b.CancelableBy(actor) {
		return ErrNotOwner
	}
	if b.status != StatusActive {
		return ErrNotCancelable
	}
	b.status = StatusCancelled
	return nil
}

func (b *Booking) IsActive() bool {
	return b.status == StatusActive
}

func (b *Booking) ID() uuid.UUID         { return b.id }
func (b *Booking) ResourceID() uuid.UUID { return b.resourceID }
func (b *Booking) UserID() uuid.UUID     { return b.userID }
func (b *Booking) Slot() TimeSlot        { return b.slot }
func (b *Booking) Status() Status        { return b.status }
func (b *Booking) Note() Note            { return b.note }
func (b *Booking) CreatedAt() time.Time  { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time  { return b.updatedAt }
