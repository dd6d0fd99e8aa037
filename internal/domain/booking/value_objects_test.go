//go:build unit

package booking_test

import (
	"testing"
	"time"

	"resource-booking/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)

func slot(t *testing.T, startMin, endMin int) booking.TimeSlot {
	t.Helper()
	ts, err := booking.NewTimeSlot(base.Add(time.Duration(startMin)*time.Minute), base.Add(time.Duration(endMin)*time.Minute))
	require.NoError(t, err)
	return ts
}

func TestNewTimeSlot(t *testing.T) {
	t.Run("start before end OK", func(t *testing.T) {
		ts, err := booking.NewTimeSlot(base, base.Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, time.Hour, ts.Duration())
	})

	t.Run("start equal to end NG", func(t *testing.T) {
		_, err := booking.NewTimeSlot(base, base)
		require.ErrorIs(t, err, booking.ErrInvalidTimeRange)
	})

	t.Run("start after end NG", func(t *testing.T) {
		_, err := booking.NewTimeSlot(base.Add(time.Hour), base)
		require.ErrorIs(t, err, booking.ErrInvalidTimeRange)
	})
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a, b booking.TimeSlot
		want bool
	}{
		{name: "partial overlap", a: slot(t, 0, 60), b: slot(t, 30, 90), want: true},
		{name: "contained", a: slot(t, 0, 120), b: slot(t, 30, 60), want: true},
		{name: "identical", a: slot(t, 0, 60), b: slot(t, 0, 60), want: true},
		{name: "touching at boundary", a: slot(t, 0, 60), b: slot(t, 60, 120), want: false},
		{name: "disjoint", a: slot(t, 0, 60), b: slot(t, 90, 120), want: false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.a.Overlaps(c.b))
			// overlap is symmetric
			assert.Equal(t, c.a.Overlaps(c.b), c.b.Overlaps(c.a))
		})
	}
}

func TestValidateProposalAt(t *testing.T) {
	now := base
	maxDuration := 8 * time.Hour

	t.Run("future slot within limit OK", func(t *testing.T) {
		ts := slot(t, 60, 120)
		require.NoError(t, ts.ValidateProposalAt(now, maxDuration))
	})

	t.Run("duration over limit NG", func(t *testing.T) {
		ts := slot(t, 60, 60+9*60)
		require.ErrorIs(t, ts.ValidateProposalAt(now, maxDuration), booking.ErrDurationExceeded)
	})

	t.Run("duration exactly at limit OK", func(t *testing.T) {
		ts := slot(t, 60, 60+8*60)
		require.NoError(t, ts.ValidateProposalAt(now, maxDuration))
	})

	t.Run("slightly over limit NG even below the next whole hour", func(t *testing.T) {
		ts := slot(t, 60, 60+8*60+1)
		require.ErrorIs(t, ts.ValidateProposalAt(now, maxDuration), booking.ErrDurationExceeded)
	})

	t.Run("start in the past NG", func(t *testing.T) {
		ts := slot(t, 0, 60)
		require.ErrorIs(t, ts.ValidateProposalAt(now.Add(30*time.Minute), maxDuration), booking.ErrPastStartTime)
	})

	t.Run("start exactly at now NG", func(t *testing.T) {
		ts := slot(t, 0, 60)
		require.ErrorIs(t, ts.ValidateProposalAt(now, maxDuration), booking.ErrPastStartTime)
	})

	t.Run("duration check precedes past-start check", func(t *testing.T) {
		ts := slot(t, -60, -60+10*60)
		require.ErrorIs(t, ts.ValidateProposalAt(now, maxDuration), booking.ErrDurationExceeded)
	})
}
