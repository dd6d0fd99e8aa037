//go:build unit

package booking_test

import (
	"testing"
	"time"

	"resource-booking/internal/domain/booking"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newActiveBooking(t *testing.T, ownerID uuid.UUID) *booking.Booking {
	t.Helper()
	ts, err := booking.NewTimeSlot(base.Add(time.Hour), base.Add(2*time.Hour))
	require.NoError(t, err)
	return booking.NewBooking(uuid.New(), ownerID, ts, booking.NewNote(""))
}

func TestNewBooking(t *testing.T) {
	ownerID := uuid.New()
	b := newActiveBooking(t, ownerID)

	assert.NotEqual(t, uuid.Nil, b.ID())
	assert.Equal(t, ownerID, b.UserID())
	assert.Equal(t, booking.StatusActive, b.Status())
	assert.True(t, b.IsActive())
}

func TestCancel(t *testing.T) {
	ownerID := uuid.New()

	t.Run("owner can cancel", func(t *testing.T) {
		b := newActiveBooking(t, ownerID)

		require.NoError(t, b.Cancel(booking.Actor{ID: ownerID}))
		assert.Equal(t, booking.StatusCancelled, b.Status())
	})

	t.Run("administrator can cancel another user's booking", func(t *testing.T) {
		b := newActiveBooking(t, ownerID)

		require.NoError(t, b.Cancel(booking.Actor{ID: uuid.New(), IsAdmin: true}))
		assert.Equal(t, booking.StatusCancelled, b.Status())
	})

	t.Run("non-owner without admin is rejected and state is unchanged", func(t *testing.T) {
		b := newActiveBooking(t, ownerID)

		require.ErrorIs(t, b.Cancel(booking.Actor{ID: uuid.New()}), booking.ErrNotOwner)
		assert.True(t, b.IsActive())
	})

	t.Run("second cancel fails with terminal state preserved", func(t *testing.T) {
		b := newActiveBooking(t, ownerID)

		require.NoError(t, b.Cancel(booking.Actor{ID: ownerID}))
		require.ErrorIs(t, b.Cancel(booking.Actor{ID: ownerID}), booking.ErrNotCancelable)
		assert.Equal(t, booking.StatusCancelled, b.Status())
	})

	t.Run("admin cancel still requires an active booking", func(t *testing.T) {
		b := newActiveBooking(t, ownerID)

		require.NoError(t, b.Cancel(booking.Actor{ID: ownerID}))
		require.ErrorIs(t, b.Cancel(booking.Actor{ID: uuid.New(), IsAdmin: true}), booking.ErrNotCancelable)
	})
}

func TestCancelableBy(t *testing.T) {
	ownerID := uuid.New()
	b := newActiveBooking(t, ownerID)

	assert.True(t, b.CancelableBy(booking.Actor{ID: ownerID}))
	assert.True(t, b.CancelableBy(booking.Actor{ID: uuid.New(), IsAdmin: true}))
	assert.False(t, b.CancelableBy(booking.Actor{ID: uuid.New()}))
}
