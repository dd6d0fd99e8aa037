package response

import (
	"time"

	"resource-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID           uuid.UUID `json:"id"`
	ResourceID   uuid.UUID `json:"resourceId"`
	ResourceName string    `json:"resourceName"`
	UserID       uuid.UUID `json:"userId"`
	UserEmail    string    `json:"userEmail"`
	StartAt      time.Time `json:"startAt"`
	EndAt        time.Time `json:"endAt"`
	Status       string    `json:"status"`
	Note         *string   `json:"note,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type BookingListResponse struct {
	ID           uuid.UUID `json:"id"`
	ResourceID   uuid.UUID `json:"resourceId"`
	ResourceName string    `json:"resourceName"`
	StartAt      time.Time `json:"startAt"`
	EndAt        time.Time `json:"endAt"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

type AvailabilitySlotResponse struct {
	StartAt   time.Time `json:"startAt"`
	EndAt     time.Time `json:"endAt"`
	Booked    bool      `json:"booked"`
	BookingID uuid.UUID `json:"bookingId"`
}

func FromBookingView(rm *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:           rm.ID,
		ResourceID:   rm.ResourceID,
		ResourceName: rm.ResourceName,
		UserID:       rm.UserID,
		UserEmail:    rm.UserEmail,
		StartAt:      rm.StartAt,
		EndAt:        rm.EndAt,
		Status:       rm.Status,
		Note:         rm.Note,
		CreatedAt:    rm.CreatedAt,
		UpdatedAt:    rm.UpdatedAt,
	}
}

func FromBookingListItem(rm *queries.BookingListItem) *BookingListResponse {
	return &BookingListResponse{
		ID:           rm.ID,
		ResourceID:   rm.ResourceID,
		ResourceName: rm.ResourceName,
		StartAt:      rm.StartAt,
		EndAt:        rm.EndAt,
		Status:       rm.Status,
		CreatedAt:    rm.CreatedAt,
	}
}

func FromAvailabilitySlot(rm *queries.AvailabilitySlot) *AvailabilitySlotResponse {
	return &AvailabilitySlotResponse{
		StartAt:   rm.StartAt,
		EndAt:     rm.EndAt,
		Booked:    rm.Booked,
		BookingID: rm.BookingID,
	}
}
