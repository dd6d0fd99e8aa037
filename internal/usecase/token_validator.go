package usecase

import (
	"resource-booking/internal/domain/user"
	"resource-booking/internal/pkg/jwt"

	"github.com/google/uuid"
)

// TokenValidator turns a bearer token into the authenticated identity
// the middleware attaches to the request.
type TokenValidator interface {
	ValidateToken(token string) (uuid.UUID, user.Role, error)
}

type jwtTokenValidator struct {
	tokens *jwt.Service
}

func NewTokenValidator(tokens *jwt.Service) TokenValidator {
	return &jwtTokenValidator{tokens: tokens}
}

func (v *jwtTokenValidator) ValidateToken(token string) (uuid.UUID, user.Role, error) {
	claims, err := v.tokens.ValidateToken(token)
	if err != nil {
		return uuid.Nil, "", err
	}

	// a token minted with a role the domain no longer knows is invalid
	role, err := user.NewRole(claims.Role)
	if err != nil {
		return uuid.Nil, "", jwt.ErrInvalidToken
	}

	return claims.UserID, role, nil
}
