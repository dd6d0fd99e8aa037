package response

import (
	"resource-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func FromAuthorizedUserView(rm *queries.AuthorizedUserView) *UserResponse {
	return &UserResponse{
		ID:    rm.ID,
		Email: rm.Email,
		Role:  rm.Role,
	}
}
