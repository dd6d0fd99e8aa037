package commands

import (
	"context"
	"errors"

	"resource-booking/internal/domain/user"
	"resource-booking/internal/infra"
	"resource-booking/internal/pkg/errs"
	"resource-booking/internal/pkg/jwt"
	"resource-booking/internal/pkg/password"
	"resource-booking/internal/usecase/queries"
)

var (
	ErrInvalidEmail       = errs.New("invalid email")
	ErrInvalidCredentials = errs.New("invalid credentials")
	ErrEmailAlreadyUsed   = errs.New("email already used")
	ErrWeakPassword       = errs.New("weak password")
)

type RegisterParams struct {
	Email    string
	Password string
}

type LoginParams struct {
	Email    string
	Password string
}

type LoginResult struct {
	Token string
	User  queries.AuthorizedUserView
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
}

type CredentialsReader interface {
	FindCredentialsByEmail(ctx context.Context, email string) (*queries.UserCredentials, error)
}

type AuthCommands interface {
	Register(ctx context.Context, params RegisterParams) (*queries.AuthorizedUserView, error)
	Login(ctx context.Context, params LoginParams) (*LoginResult, error)
}

type authCommandsImpl struct {
	userRepo   UserRepository
	credsRead  CredentialsReader
	jwtService *jwt.Service
}

func NewAuthCommands(userRepo UserRepository, credsRead CredentialsReader, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{
		userRepo:   userRepo,
		credsRead:  credsRead,
		jwtService: jwtService,
	}
}

func (c *authCommandsImpl) Register(ctx context.Context, params RegisterParams) (*queries.AuthorizedUserView, error) {
	email, err := user.NewEmail(params.Email)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidEmail)
	}

	hash, err := password.HashPassword(params.Password)
	if err != nil {
		if errors.Is(err, password.ErrInvalidPassword) {
			return nil, errs.Mark(err, ErrWeakPassword)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	entity := user.NewUser(email, hash, user.RoleMember)
	if err := c.userRepo.Create(ctx, entity); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, errs.Mark(err, ErrEmailAlreadyUsed)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return &queries.AuthorizedUserView{
		ID:    entity.ID(),
		Email: entity.Email().String(),
		Role:  entity.Role().String(),
	}, nil
}

func (c *authCommandsImpl) Login(ctx context.Context, params LoginParams) (*LoginResult, error) {
	creds, err := c.credsRead.FindCredentialsByEmail(ctx, params.Email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := password.ComparePassword(creds.PasswordHash, params.Password); err != nil {
		return nil, errs.Mark(err, ErrInvalidCredentials)
	}

	role, err := user.NewRole(creds.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	token, err := c.jwtService.GenerateToken(creds.ID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return &LoginResult{
		Token: token,
		User: queries.AuthorizedUserView{
			ID:    creds.ID,
			Email: creds.Email,
			Role:  creds.Role,
		},
	}, nil
}
