package request

import (
	"time"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	ResourceID uuid.UUID `json:"resource_id" binding:"required"`
	StartAt    time.Time `json:"start_at" binding:"required"`
	EndAt      time.Time `json:"end_at" binding:"required"`
	Note       *string   `json:"note,omitempty"`
}

// AvailabilityQuery binds the ?date=YYYY-MM-DD parameter. The day is
// interpreted in UTC.
type AvailabilityQuery struct {
	Date string `form:"date" binding:"required"`
}

func (q AvailabilityQuery) ParseDate() (time.Time, error) {
	return time.Parse("2006-01-02", q.Date)
}

// ListBookingsQuery carries the optional admin listing filters as raw
// strings; parsing happens in ParseFilter so a bad value surfaces as one
// error instead of a silent zero.
type ListBookingsQuery struct {
	ResourceID string `form:"resource_id"`
	From       string `form:"from"`
	To         string `form:"to"`
}

func (q ListBookingsQuery) ParseFilter() (resourceID *uuid.UUID, from, to *time.Time, err error) {
	if q.ResourceID != "" {
		id, parseErr := uuid.Parse(q.ResourceID)
		if parseErr != nil {
			return nil, nil, nil, parseErr
		}
		resourceID = &id
	}
	if q.From != "" {
		t, parseErr := time.Parse(time.RFC3339, q.From)
		if parseErr != nil {
			return nil, nil, nil, parseErr
		}
		from = &t
	}
	if q.To != "" {
		t, parseErr := time.Parse(time.RFC3339, q.To)
		if parseErr != nil {
			return nil, nil, nil, parseErr
		}
		to = &t
	}
	return resourceID, from, to, nil
}
