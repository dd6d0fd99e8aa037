package response

import (
	"time"

	"resource-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type ResourceResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func FromResourceView(rm *queries.ResourceView) *ResourceResponse {
	return &ResourceResponse{
		ID:          rm.ID,
		Name:        rm.Name,
		Description: rm.Description,
		Active:      rm.Active,
		CreatedAt:   rm.CreatedAt,
		UpdatedAt:   rm.UpdatedAt,
	}
}
