package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type BookingView struct {
	ID           uuid.UUID `json:"id"`
	ResourceID   uuid.UUID `json:"resource_id"`
	ResourceName string    `json:"resource_name"`
	UserID       uuid.UUID `json:"user_id"`
	UserEmail    string    `json:"user_email"`
	StartAt      time.Time `json:"start_at"`
	EndAt        time.Time `json:"end_at"`
	Status       string    `json:"status"`
	Note         *string   `json:"note,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type BookingListItem struct {
	ID           uuid.UUID `json:"id"`
	ResourceID   uuid.UUID `json:"resource_id"`
	ResourceName string    `json:"resource_name"`
	StartAt      time.Time `json:"start_at"`
	EndAt        time.Time `json:"end_at"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// AvailabilitySlot is a derived view, recomputed per query and never
// persisted. Only occupied sub-intervals are reported; free time is the
// complement, left to callers.
type AvailabilitySlot struct {
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	Booked    bool      `json:"booked"`
	BookingID uuid.UUID `json:"booking_id"`
}

// BookingFilter narrows the administrative booking listing. Nil fields
// match everything.
type BookingFilter struct {
	ResourceID *uuid.UUID
	From       *time.Time
	To         *time.Time
}

type ResourceView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type AuthorizedUserView struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

// UserCredentials carries the password hash and is only handed to the
// login path, never serialized.
type UserCredentials struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         string
}
