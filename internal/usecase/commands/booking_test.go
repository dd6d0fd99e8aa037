//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"resource-booking/internal/domain/booking"
	"resource-booking/internal/infra"
	"resource-booking/internal/pkg/clock"
	"resource-booking/internal/pkg/config"
	"resource-booking/internal/pkg/reslock"
	"resource-booking/internal/usecase/commands"
	"resource-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2030, 6, 1, 9, 0, 0, 0, time.UTC)

type stubBookingRepo struct {
	reserveFn func(ctx context.Context, b *booking.Booking) (uuid.UUID, error)
	findFn    func(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	updateFn  func(ctx context.Context, id uuid.UUID, from, to booking.Status) error
}

func (s *stubBookingRepo) ReserveSlot(ctx context.Context, b *booking.Booking) (uuid.UUID, error) {
	return s.reserveFn(ctx, b)
}

func (s *stubBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return s.findFn(ctx, id)
}

func (s *stubBookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to booking.Status) error {
	return s.updateFn(ctx, id, from, to)
}

type stubResourceReader struct {
	view *queries.ResourceView
	err  error
}

func (s *stubResourceReader) FindByID(_ context.Context, _ uuid.UUID) (*queries.ResourceView, error) {
	return s.view, s.err
}

type stubViewReader struct {
	view *queries.BookingView
	err  error
}

func (s *stubViewReader) FindByID(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	if s.view != nil {
		v := *s.view
		v.ID = id
		return &v, nil
	}
	return nil, s.err
}

func activeResource(id uuid.UUID) *queries.ResourceView {
	return &queries.ResourceView{
		ID:     id,
		Name:   "Meeting Room A",
		Active: true,
	}
}

func newCommands(
	repo commands.BookingRepository,
	resources commands.ResourceReader,
	views commands.BookingViewReader,
) commands.BookingCommands {
	return commands.NewBookingCommands(
		repo,
		resources,
		views,
		reslock.NewKeyedMutex(),
		clock.NewMockClock(testNow),
		config.BookingConfig{MaxDuration: 8 * time.Hour, LockWait: 100 * time.Millisecond},
	)
}

func createParams(resourceID uuid.UUID, startOffset, endOffset time.Duration) commands.CreateBookingParams {
	return commands.CreateBookingParams{
		ResourceID: resourceID,
		StartAt:    testNow.Add(startOffset),
		EndAt:      testNow.Add(endOffset),
	}
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()
	resourceID := uuid.New()
	actor := booking.Actor{ID: uuid.New()}

	t.Run("reserves a valid slot and returns the view", func(t *testing.T) {
		bookingID := uuid.New()
		repo := &stubBookingRepo{
			reserveFn: func(_ context.Context, b *booking.Booking) (uuid.UUID, error) {
				assert.Equal(t, resourceID, b.ResourceID())
				assert.Equal(t, actor.ID, b.UserID())
				assert.Equal(t, booking.StatusActive, b.Status())
				return bookingID, nil
			},
		}
		uc := newCommands(repo, &stubResourceReader{view: activeResource(resourceID)}, &stubViewReader{view: &queries.BookingView{Status: "active"}})

		view, err := uc.CreateBooking(ctx, createParams(resourceID, time.Hour, 2*time.Hour), actor)
		require.NoError(t, err)
		assert.Equal(t, bookingID, view.ID)
	})

	t.Run("rejects an inverted range before touching storage", func(t *testing.T) {
		repo := &stubBookingRepo{
			reserveFn: func(_ context.Context, _ *booking.Booking) (uuid.UUID, error) {
				t.Fatal("reserve must not be called")
				return uuid.Nil, nil
			},
		}
		uc := newCommands(repo, &stubResourceReader{view: activeResource(resourceID)}, &stubViewReader{})

		_, err := uc.CreateBooking(ctx, createParams(resourceID, 2*time.Hour, time.Hour), actor)
		assert.ErrorIs(t, err, commands.ErrInvalidTimeRange)
	})

	t.Run("rejects a slot longer than the maximum duration", func(t *testing.T) {
		uc := newCommands(&stubBookingRepo{}, &stubResourceReader{view: activeResource(resourceID)}, &stubViewReader{})

		_, err := uc.CreateBooking(ctx, createParams(resourceID, time.Hour, 10*time.Hour), actor)
		assert.ErrorIs(t, err, commands.ErrDurationExceeded)
	})

	t.Run("rejects a slot starting in the past", func(t *testing.T) {
		uc := newCommands(&stubBookingRepo{}, &stubResourceReader{view: activeResource(resourceID)}, &stubViewReader{})

		_, err := uc.CreateBooking(ctx, createParams(resourceID, -time.Hour, time.Hour), actor)
		assert.ErrorIs(t, err, commands.ErrPastStartTime)
	})

	t.Run("unknown resource", func(t *testing.T) {
		reader := &stubResourceReader{err: infra.WrapRepoErr("resource not found", nil, infra.KindNotFound)}
		uc := newCommands(&stubBookingRepo{}, reader, &stubViewReader{})

		_, err := uc.CreateBooking(ctx, createParams(resourceID, time.Hour, 2*time.Hour), actor)
		assert.ErrorIs(t, err, commands.ErrResourceNotFound)
	})

	t.Run("inactive resource", func(t *testing.T) {
		view := activeResource(resourceID)
		view.Active = false
		uc := newCommands(&stubBookingRepo{}, &stubResourceReader{view: view}, &stubViewReader{})

		_, err := uc.CreateBooking(ctx, createParams(resourceID, time.Hour, 2*time.Hour), actor)
		assert.ErrorIs(t, err, commands.ErrResourceInactive)
	})

	t.Run("overlapping slot surfaces as a conflict", func(t *testing.T) {
		repo := &stubBookingRepo{
			reserveFn: func(_ context.Context, _ *booking.Booking) (uuid.UUID, error) {
				return uuid.Nil, infra.WrapRepoErr("slot taken", nil, infra.KindConflict)
			},
		}
		uc := newCommands(repo, &stubResourceReader{view: activeResource(resourceID)}, &stubViewReader{})

		_, err := uc.CreateBooking(ctx, createParams(resourceID, time.Hour, 2*time.Hour), actor)
		assert.ErrorIs(t, err, commands.ErrBookingOverlap)
	})

	t.Run("database lock timeout surfaces as busy", func(t *testing.T) {
		repo := &stubBookingRepo{
			reserveFn: func(_ context.Context, _ *booking.Booking) (uuid.UUID, error) {
				return uuid.Nil, infra.WrapRepoErr("lock timeout", nil, infra.KindLockNotAvailable)
			},
		}
		uc := newCommands(repo, &stubResourceReader{view: activeResource(resourceID)}, &stubViewReader{})

		_, err := uc.CreateBooking(ctx, createParams(resourceID, time.Hour, 2*time.Hour), actor)
		assert.ErrorIs(t, err, commands.ErrReservationBusy)
	})
}

// racyBookingStore keeps bookings with their status in memory. ReserveSlot
// checks for overlap among active rows and then inserts without any internal
// locking, so it only behaves correctly when callers serialize access per
// resource, which is exactly what CreateBooking must guarantee. UpdateStatus
// applies the transition atomically with its precondition, matching the
// conditional write the real repository performs.
type racyBookingStore struct {
	mu      sync.Mutex
	records []*storedBooking
}

type storedBooking struct {
	id         uuid.UUID
	resourceID uuid.UUID
	userID     uuid.UUID
	slot       booking.TimeSlot
	status     booking.Status
}

func (s *racyBookingStore) ReserveSlot(_ context.Context, b *booking.Booking) (uuid.UUID, error) {
	for _, existing := range s.records {
		if existing.status == booking.StatusActive && existing.slot.Overlaps(b.Slot()) {
			return uuid.Nil, infra.WrapRepoErr("slot taken", nil, infra.KindConflict)
		}
	}
	time.Sleep(time.Millisecond) // widen the check-then-insert window
	s.records = append(s.records, &storedBooking{
		id:         b.ID(),
		resourceID: b.ResourceID(),
		userID:     b.UserID(),
		slot:       b.Slot(),
		status:     b.Status(),
	})
	return b.ID(), nil
}

func (s *racyBookingStore) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.id == id {
			return booking.ReconstructBooking(
				r.id, r.resourceID, r.userID,
				r.slot, r.status, booking.NewNote(""),
				testNow, testNow,
			), nil
		}
	}
	return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
}

func (s *racyBookingStore) UpdateStatus(_ context.Context, id uuid.UUID, from, to booking.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.id == id {
			if r.status != from {
				return infra.WrapRepoErr("booking status changed concurrently", nil, infra.KindConflict)
			}
			r.status = to
			return nil
		}
	}
	return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
}

func (s *racyBookingStore) activeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.records {
		if r.status == booking.StatusActive {
			n++
		}
	}
	return n
}

func TestCreateBookingConcurrentAttempts(t *testing.T) {
	const attempts = 16

	ctx := context.Background()
	resourceID := uuid.New()
	store := &racyBookingStore{}
	uc := commands.NewBookingCommands(
		store,
		&stubResourceReader{view: activeResource(resourceID)},
		&stubViewReader{view: &queries.BookingView{Status: "active"}},
		reslock.NewKeyedMutex(),
		clock.NewMockClock(testNow),
		config.BookingConfig{MaxDuration: 8 * time.Hour, LockWait: 5 * time.Second},
	)

	var wg sync.WaitGroup
	results := make([]error, attempts)
	for i := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.CreateBooking(ctx, createParams(resourceID, time.Hour, 2*time.Hour), booking.Actor{ID: uuid.New()})
			results[i] = err
		}()
	}
	wg.Wait()

	var won, lost int
	for _, err := range results {
		switch {
		case err == nil:
			won++
		default:
			require.ErrorIs(t, err, commands.ErrBookingOverlap)
			lost++
		}
	}
	assert.Equal(t, 1, won, "exactly one attempt may claim the slot")
	assert.Equal(t, attempts-1, lost)
	assert.Len(t, store.records, 1)
}

func TestCancelThenRebook(t *testing.T) {
	ctx := context.Background()
	resourceID := uuid.New()
	firstUser := booking.Actor{ID: uuid.New()}
	secondUser := booking.Actor{ID: uuid.New()}
	store := &racyBookingStore{}
	uc := newCommands(store, &stubResourceReader{view: activeResource(resourceID)}, &stubViewReader{view: &queries.BookingView{Status: "active"}})

	first, err := uc.CreateBooking(ctx, createParams(resourceID, time.Hour, 2*time.Hour), firstUser)
	require.NoError(t, err)

	// the slot is held, an identical attempt must lose
	_, err = uc.CreateBooking(ctx, createParams(resourceID, time.Hour, 2*time.Hour), secondUser)
	require.ErrorIs(t, err, commands.ErrBookingOverlap)

	_, err = uc.CancelBooking(ctx, first.ID, firstUser)
	require.NoError(t, err)

	// cancellation keeps the row but frees the interval
	_, err = uc.CreateBooking(ctx, createParams(resourceID, time.Hour, 2*time.Hour), secondUser)
	require.NoError(t, err)
	assert.Len(t, store.records, 2)
	assert.Equal(t, 1, store.activeCount())
}

func TestCancelBooking(t *testing.T) {
	ctx := context.Background()
	owner := booking.Actor{ID: uuid.New()}
	admin := booking.Actor{ID: uuid.New(), IsAdmin: true}

	newStoredBooking := func(t *testing.T, userID uuid.UUID) *booking.Booking {
		t.Helper()
		slot, err := booking.NewTimeSlot(testNow.Add(time.Hour), testNow.Add(2*time.Hour))
		require.NoError(t, err)
		return booking.ReconstructBooking(
			uuid.New(), uuid.New(), userID,
			slot, booking.StatusActive, booking.NewNote(""),
			testNow, testNow,
		)
	}

	t.Run("owner cancels an active booking", func(t *testing.T) {
		stored := newStoredBooking(t, owner.ID)
		var updatedFrom, updatedTo booking.Status
		repo := &stubBookingRepo{
			findFn: func(_ context.Context, _ uuid.UUID) (*booking.Booking, error) {
				return stored, nil
			},
			updateFn: func(_ context.Context, _ uuid.UUID, from, to booking.Status) error {
				updatedFrom = from
				updatedTo = to
				return nil
			},
		}
		uc := newCommands(repo, &stubResourceReader{}, &stubViewReader{view: &queries.BookingView{Status: "cancelled"}})

		view, err := uc.CancelBooking(ctx, stored.ID(), owner)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusActive, updatedFrom)
		assert.Equal(t, booking.StatusCancelled, updatedTo)
		assert.Equal(t, "cancelled", view.Status)
	})

	t.Run("admin cancels another user's booking", func(t *testing.T) {
		stored := newStoredBooking(t, owner.ID)
		repo := &stubBookingRepo{
			findFn: func(_ context.Context, _ uuid.UUID) (*booking.Booking, error) {
				return stored, nil
			},
			updateFn: func(_ context.Context, _ uuid.UUID, _, _ booking.Status) error {
				return nil
			},
		}
		uc := newCommands(repo, &stubResourceReader{}, &stubViewReader{view: &queries.BookingView{Status: "cancelled"}})

		_, err := uc.CancelBooking(ctx, stored.ID(), admin)
		require.NoError(t, err)
	})

	t.Run("unknown booking", func(t *testing.T) {
		repo := &stubBookingRepo{
			findFn: func(_ context.Context, _ uuid.UUID) (*booking.Booking, error) {
				return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
			},
		}
		uc := newCommands(repo, &stubResourceReader{}, &stubViewReader{})

		_, err := uc.CancelBooking(ctx, uuid.New(), owner)
		assert.ErrorIs(t, err, commands.ErrBookingNotFound)
	})

	t.Run("stranger is refused and nothing is written", func(t *testing.T) {
		stored := newStoredBooking(t, owner.ID)
		repo := &stubBookingRepo{
			findFn: func(_ context.Context, _ uuid.UUID) (*booking.Booking, error) {
				return stored, nil
			},
			updateFn: func(_ context.Context, _ uuid.UUID, _, _ booking.Status) error {
				t.Fatal("update must not be called")
				return nil
			},
		}
		uc := newCommands(repo, &stubResourceReader{}, &stubViewReader{})

		_, err := uc.CancelBooking(ctx, stored.ID(), booking.Actor{ID: uuid.New()})
		assert.ErrorIs(t, err, commands.ErrForbidden)
	})

	t.Run("cancelling twice fails on status", func(t *testing.T) {
		stored := newStoredBooking(t, owner.ID)
		require.NoError(t, stored.Cancel(owner))
		repo := &stubBookingRepo{
			findFn: func(_ context.Context, _ uuid.UUID) (*booking.Booking, error) {
				return stored, nil
			},
		}
		uc := newCommands(repo, &stubResourceReader{}, &stubViewReader{})

		_, err := uc.CancelBooking(ctx, stored.ID(), owner)
		assert.ErrorIs(t, err, commands.ErrInvalidStatus)
	})

	t.Run("two cancels racing past the load settle to one success", func(t *testing.T) {
		// both callers read the booking while it was still active; the
		// conditional write lets only the first transition land
		var updates int
		repo := &stubBookingRepo{
			findFn: func(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
				return newStoredBooking(t, owner.ID), nil
			},
			updateFn: func(_ context.Context, _ uuid.UUID, from, to booking.Status) error {
				updates++
				if updates == 1 {
					return nil
				}
				return infra.WrapRepoErr("booking status changed concurrently", nil, infra.KindConflict)
			},
		}
		uc := newCommands(repo, &stubResourceReader{}, &stubViewReader{view: &queries.BookingView{Status: "cancelled"}})

		_, err := uc.CancelBooking(ctx, uuid.New(), owner)
		require.NoError(t, err)

		_, err = uc.CancelBooking(ctx, uuid.New(), admin)
		assert.ErrorIs(t, err, commands.ErrInvalidStatus)
		assert.Equal(t, 2, updates)
	})
}
