package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/nkroberts01/virtual-interviews/internal/apperror"
	"github.com/nkroberts01/virtual-interviews/pkg/model"
)

// CreateUser inserts an unconfirmed user and returns the stored row.
func (r *Repository) CreateUser(ctx context.Context, email, passwordHash string) (model.User, error) {
	id := uuid.New()
	const q = `
INSERT INTO users (id, email, password_hash, created_at, updated_at)
VALUES ($1, $2, $3, now(), now())
RETURNING created_at, updated_at
`
	u := model.User{ID: id, Email: email, PasswordHash: passwordHash}
	row := r.db.QueryRow(ctx, q, id, email, passwordHash)
	if err := row.Scan(&u.CreatedAt, &u.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.User{}, apperror.Wrap(apperror.Validation, "email already registered", err)
		}
		return model.User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

// GetUserByEmail returns a user by email.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	const q = `
SELECT id, email, password_hash, confirmed_at, created_at, updated_at
FROM users
WHERE email = $1
`
	var u model.User
	row := r.db.QueryRow(ctx, q, email)
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.ConfirmedAt, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, apperror.Wrap(apperror.NotFound, "user not found", err)
		}
		return model.User{}, fmt.Errorf("scan user by email: %w", err)
	}
	return u, nil
}

// GetUserByID returns a user by id.
func (r *Repository) GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	const q = `
SELECT id, email, password_hash, confirmed_at, created_at, updated_at
FROM users
WHERE id = $1
`
	var u model.User
	row := r.db.QueryRow(ctx, q, id)
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.ConfirmedAt, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, apperror.Wrap(apperror.NotFound, "user not found", err)
		}
		return model.User{}, fmt.Errorf("scan user by id: %w", err)
	}
	return u, nil
}

// ConfirmUser stamps confirmed_at for a user created through signup.
func (r *Repository) ConfirmUser(ctx context.Context, id uuid.UUID) error {
	const q = `
UPDATE users SET confirmed_at = now(), updated_at = now()
WHERE id = $1 AND confirmed_at IS NULL
`
	tag, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return fmt.Errorf("confirm user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.New(apperror.NotFound, "user not found")
	}
	return nil
}
