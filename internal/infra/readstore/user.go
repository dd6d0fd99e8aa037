package readstore

import (
	"context"

	"resource-booking/internal/infra"
	"resource-booking/internal/infra/db"
	"resource-booking/internal/pkg/pgconv"
	"resource-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

func (r *UserReadStore) FindCredentialsByEmail(ctx context.Context, email string) (*queries.UserCredentials, error) {
	var creds queries.UserCredentials

	err := r.db.QueryRow(ctx, `
		SELECT id, email, password_hash, role
		FROM users
		WHERE email = $1`,
		email,
	).Scan(&creds.ID, &creds.Email, &creds.PasswordHash, &creds.Role)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by email", err)
	}

	return &creds, nil
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	var view queries.AuthorizedUserView

	err := r.db.QueryRow(ctx, `
		SELECT id, email, role
		FROM users
		WHERE id = $1`,
		id,
	).Scan(&view.ID, &view.Email, &view.Role)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}

	return &view, nil
}
