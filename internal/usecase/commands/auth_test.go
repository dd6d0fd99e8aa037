//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"resource-booking/internal/domain/user"
	"resource-booking/internal/infra"
	"resource-booking/internal/pkg/jwt"
	"resource-booking/internal/pkg/password"
	"resource-booking/internal/usecase/commands"
	"resource-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserRepo struct {
	createFn func(ctx context.Context, u *user.User) error
}

func (s *stubUserRepo) Create(ctx context.Context, u *user.User) error {
	return s.createFn(ctx, u)
}

type stubCredsReader struct {
	creds *queries.UserCredentials
	err   error
}

func (s *stubCredsReader) FindCredentialsByEmail(_ context.Context, _ string) (*queries.UserCredentials, error) {
	return s.creds, s.err
}

func newAuthCommands(repo commands.UserRepository, creds commands.CredentialsReader) commands.AuthCommands {
	return commands.NewAuthCommands(repo, creds, jwt.NewService("test-secret", time.Hour))
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a member with a hashed password", func(t *testing.T) {
		var created *user.User
		repo := &stubUserRepo{
			createFn: func(_ context.Context, u *user.User) error {
				created = u
				return nil
			},
		}
		uc := newAuthCommands(repo, &stubCredsReader{})

		view, err := uc.Register(ctx, commands.RegisterParams{
			Email:    "Member@Example.com",
			Password: "correct-horse",
		})
		require.NoError(t, err)

		assert.Equal(t, "member@example.com", view.Email)
		assert.Equal(t, user.RoleMember.String(), view.Role)
		require.NotNil(t, created)
		assert.NotEqual(t, "correct-horse", created.PasswordHash())
		assert.NoError(t, password.ComparePassword(created.PasswordHash(), "correct-horse"))
	})

	t.Run("rejects a malformed email", func(t *testing.T) {
		uc := newAuthCommands(&stubUserRepo{}, &stubCredsReader{})

		_, err := uc.Register(ctx, commands.RegisterParams{Email: "not-an-email", Password: "secret123"})
		assert.ErrorIs(t, err, commands.ErrInvalidEmail)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := &stubUserRepo{
			createFn: func(_ context.Context, _ *user.User) error {
				return infra.WrapRepoErr("duplicate", nil, infra.KindDuplicateKey)
			},
		}
		uc := newAuthCommands(repo, &stubCredsReader{})

		_, err := uc.Register(ctx, commands.RegisterParams{Email: "a@example.com", Password: "secret123"})
		assert.ErrorIs(t, err, commands.ErrEmailAlreadyUsed)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	storedCreds := func(t *testing.T, plaintext string) *queries.UserCredentials {
		t.Helper()
		hash, err := password.HashPassword(plaintext)
		require.NoError(t, err)
		return &queries.UserCredentials{
			ID:           uuid.New(),
			Email:        "a@example.com",
			PasswordHash: hash,
			Role:         "member",
		}
	}

	t.Run("issues a token for valid credentials", func(t *testing.T) {
		creds := storedCreds(t, "secret123")
		uc := newAuthCommands(&stubUserRepo{}, &stubCredsReader{creds: creds})

		result, err := uc.Login(ctx, commands.LoginParams{Email: "a@example.com", Password: "secret123"})
		require.NoError(t, err)

		assert.NotEmpty(t, result.Token)
		assert.Equal(t, creds.ID, result.User.ID)

		claims, err := jwt.NewService("test-secret", time.Hour).ValidateToken(result.Token)
		require.NoError(t, err)
		assert.Equal(t, creds.ID, claims.UserID)
	})

	t.Run("wrong password", func(t *testing.T) {
		uc := newAuthCommands(&stubUserRepo{}, &stubCredsReader{creds: storedCreds(t, "secret123")})

		_, err := uc.Login(ctx, commands.LoginParams{Email: "a@example.com", Password: "wrong"})
		assert.ErrorIs(t, err, commands.ErrInvalidCredentials)
	})

	t.Run("unknown email behaves like a bad password", func(t *testing.T) {
		reader := &stubCredsReader{err: infra.WrapRepoErr("user not found", nil, infra.KindNotFound)}
		uc := newAuthCommands(&stubUserRepo{}, reader)

		_, err := uc.Login(ctx, commands.LoginParams{Email: "ghost@example.com", Password: "secret123"})
		assert.ErrorIs(t, err, commands.ErrInvalidCredentials)
	})
}
