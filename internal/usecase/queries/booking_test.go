//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"resource-booking/internal/infra"
	"resource-booking/internal/usecase/queries"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBookingStore struct {
	byID        map[uuid.UUID]*queries.BookingView
	inWindow    []*queries.BookingListItem
	gotStart    time.Time
	gotEnd      time.Time
	gotResource uuid.UUID
}

func (s *stubBookingStore) FindByID(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	if v, ok := s.byID[id]; ok {
		return v, nil
	}
	return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
}

func (s *stubBookingStore) FindByUserID(_ context.Context, _ uuid.UUID) ([]*queries.BookingListItem, error) {
	return nil, nil
}

func (s *stubBookingStore) FindAllWithFilters(_ context.Context, _ queries.BookingFilter) ([]*queries.BookingListItem, error) {
	return nil, nil
}

func (s *stubBookingStore) FindActiveInWindow(_ context.Context, resourceID uuid.UUID, windowStart, windowEnd time.Time) ([]*queries.BookingListItem, error) {
	s.gotResource = resourceID
	s.gotStart = windowStart
	s.gotEnd = windowEnd
	return s.inWindow, nil
}

type stubResourceStore struct {
	known map[uuid.UUID]bool
}

func (s *stubResourceStore) FindByID(_ context.Context, id uuid.UUID) (*queries.ResourceView, error) {
	if s.known[id] {
		return &queries.ResourceView{ID: id, Active: true}, nil
	}
	return nil, infra.WrapRepoErr("resource not found", nil, infra.KindNotFound)
}

func (s *stubResourceStore) FindActive(_ context.Context) ([]*queries.ResourceView, error) {
	return nil, nil
}

func (s *stubResourceStore) FindAll(_ context.Context) ([]*queries.ResourceView, error) {
	return nil, nil
}

func TestGetByID(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	store := &stubBookingStore{byID: map[uuid.UUID]*queries.BookingView{
		id: {ID: id, Status: "active"},
	}}
	q := queries.NewBookingQueries(store, &stubResourceStore{})

	t.Run("returns the stored view", func(t *testing.T) {
		view, err := q.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, view.ID)
	})

	t.Run("maps a missing row to not found", func(t *testing.T) {
		_, err := q.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, queries.ErrBookingNotFound)
	})
}

func TestAvailability(t *testing.T) {
	ctx := context.Background()
	resourceID := uuid.New()
	day := time.Date(2030, 6, 15, 0, 0, 0, 0, time.UTC)

	newItem := func(startHour, endHour int) *queries.BookingListItem {
		return &queries.BookingListItem{
			ID:      uuid.New(),
			StartAt: day.Add(time.Duration(startHour) * time.Hour),
			EndAt:   day.Add(time.Duration(endHour) * time.Hour),
			Status:  "active",
		}
	}

	t.Run("projects active bookings as occupied slots", func(t *testing.T) {
		first := newItem(9, 10)
		second := newItem(14, 16)
		store := &stubBookingStore{inWindow: []*queries.BookingListItem{first, second}}
		q := queries.NewBookingQueries(store, &stubResourceStore{known: map[uuid.UUID]bool{resourceID: true}})

		slots, err := q.Availability(ctx, resourceID, day)
		require.NoError(t, err)

		expected := []*queries.AvailabilitySlot{
			{StartAt: first.StartAt, EndAt: first.EndAt, Booked: true, BookingID: first.ID},
			{StartAt: second.StartAt, EndAt: second.EndAt, Booked: true, BookingID: second.ID},
		}
		if diff := cmp.Diff(expected, slots); diff != "" {
			t.Errorf("availability mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("queries exactly one UTC day", func(t *testing.T) {
		store := &stubBookingStore{}
		q := queries.NewBookingQueries(store, &stubResourceStore{known: map[uuid.UUID]bool{resourceID: true}})

		_, err := q.Availability(ctx, resourceID, day.Add(13*time.Hour+27*time.Minute))
		require.NoError(t, err)

		assert.Equal(t, resourceID, store.gotResource)
		assert.Equal(t, day, store.gotStart, "window starts at midnight of the requested day")
		assert.Equal(t, day.Add(24*time.Hour), store.gotEnd)
	})

	t.Run("normalizes the date to UTC before truncating", func(t *testing.T) {
		store := &stubBookingStore{}
		q := queries.NewBookingQueries(store, &stubResourceStore{known: map[uuid.UUID]bool{resourceID: true}})

		// 2030-06-15 01:00 +09:00 is 2030-06-14 16:00 UTC
		tokyo := time.FixedZone("JST", 9*60*60)
		_, err := q.Availability(ctx, resourceID, time.Date(2030, 6, 15, 1, 0, 0, 0, tokyo))
		require.NoError(t, err)

		assert.Equal(t, time.Date(2030, 6, 14, 0, 0, 0, 0, time.UTC), store.gotStart)
	})

	t.Run("empty day yields an empty slice", func(t *testing.T) {
		store := &stubBookingStore{}
		q := queries.NewBookingQueries(store, &stubResourceStore{known: map[uuid.UUID]bool{resourceID: true}})

		slots, err := q.Availability(ctx, resourceID, day)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("unknown resource", func(t *testing.T) {
		q := queries.NewBookingQueries(&stubBookingStore{}, &stubResourceStore{})

		_, err := q.Availability(ctx, uuid.New(), day)
		assert.ErrorIs(t, err, queries.ErrResourceNotFound)
	})
}
