package queries

import (
	"context"
	"time"

	"resource-booking/internal/infra"
	"resource-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound  = errs.New("booking not found")
	ErrResourceNotFound = errs.New("resource not found")
)

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*BookingListItem, error)
	FindAllWithFilters(ctx context.Context, filter BookingFilter) ([]*BookingListItem, error)
	FindActiveInWindow(ctx context.Context, resourceID uuid.UUID, windowStart, windowEnd time.Time) ([]*BookingListItem, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*BookingListItem, error)
	ListAll(ctx context.Context, filter BookingFilter) ([]*BookingListItem, error)
	Availability(ctx context.Context, resourceID uuid.UUID, date time.Time) ([]*AvailabilitySlot, error)
}

type bookingQueriesImpl struct {
	store     BookingReadStore
	resources ResourceReadStore
}

func NewBookingQueries(store BookingReadStore, resources ResourceReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store, resources: resources}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*BookingListItem, error) {
	return q.store.FindByUserID(ctx, userID)
}

func (q *bookingQueriesImpl) ListAll(ctx context.Context, filter BookingFilter) ([]*BookingListItem, error) {
	return q.store.FindAllWithFilters(ctx, filter)
}

// Availability projects the occupied slots of a resource over one UTC day.
// The window is [dayStart, dayStart+24h); a booking belongs to the day its
// start falls on. The result is recomputed on every call.
func (q *bookingQueriesImpl) Availability(ctx context.Context, resourceID uuid.UUID, date time.Time) ([]*AvailabilitySlot, error) {
	if _, err := q.resources.FindByID(ctx, resourceID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, err
	}

	date = date.UTC()
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	bookings, err := q.store.FindActiveInWindow(ctx, resourceID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	slots := make([]*AvailabilitySlot, 0, len(bookings))
	for _, b := range bookings {
		slots = append(slots, &AvailabilitySlot{
			StartAt:   b.StartAt,
			EndAt:     b.EndAt,
			Booked:    true,
			BookingID: b.ID,
		})
	}
	return slots, nil
}
