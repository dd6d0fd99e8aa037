package booking

import (
	"errors"
	"time"
)

var (
	ErrInvalidTimeRange = errors.New("start time must be before end time")
	ErrDurationExceeded = errors.New("booking duration exceeds the maximum")
	ErrPastStartTime    = errors.New("start time must be in the future")
)

// TimeSlot is a half-open interval [start, end). Two slots that merely touch
// at a boundary instant do not overlap.
type TimeSlot struct {
	start time.Time
	end   time.Time
}

func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	if !start.Before(end) {
		return TimeSlot{}, ErrInvalidTimeRange
	}
	return TimeSlot{start: start, end: end}, nil
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.end
}

func (ts TimeSlot) Duration() time.Duration {
	return ts.end.Sub(ts.start)
}

func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return ts.start.Before(other.end) && other.start.Before(ts.end)
}

// ValidateProposalAt applies the booking-validity rules to a candidate slot.
// Check order is fixed: duration cap first, then the future-only rule; range
// validity is already guaranteed by NewTimeSlot. A start exactly at now fails.
func (ts TimeSlot) ValidateProposalAt(now time.Time, maxDuration time.Duration) error {
	if maxDuration > 0 && ts.Duration() > maxDuration {
		return ErrDurationExceeded
	}
	if !ts.start.After(now) {
		return ErrPastStartTime
	}
	return nil
}

type Note struct {
	value string
}

func NewNote(value string) Note {
	return Note{value: value}
}

func (n Note) String() string {
	return n.value
}

func (n Note) IsEmpty() bool {
	return n.value == ""
}
