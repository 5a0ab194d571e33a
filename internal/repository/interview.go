package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/nkroberts01/virtual-interviews/internal/apperror"
	"github.com/nkroberts01/virtual-interviews/pkg/model"
)

// CreateInterview inserts one interview row. The caller supplies fully
// normalized settings; creator_id is bound from the session identity and is
// immutable after this point. One statement, so the write is atomic.
func (r *Repository) CreateInterview(ctx context.Context, creatorID uuid.UUID, title string, settings model.InterviewSettings) (model.Interview, error) {
	id := uuid.New()
	const q = `
INSERT INTO interviews (id, creator_id, title, settings, created_at)
VALUES ($1, $2, $3, $4, now())
RETURNING created_at
`
	iv := model.Interview{ID: id, CreatorID: creatorID, Title: title, Settings: settings}
	row := r.db.QueryRow(ctx, q, id, creatorID, title, settings)
	if err := row.Scan(&iv.CreatedAt); err != nil {
		return model.Interview{}, apperror.FromStore(fmt.Errorf("insert interview: %w", err), "interview not found")
	}
	return iv, nil
}

// GetInterviewOwned fetches one interview visible to the given creator. A row
// owned by someone else and a row that does not exist produce the same
// not-found result.
func (r *Repository) GetInterviewOwned(ctx context.Context, id, creatorID uuid.UUID) (model.Interview, error) {
	const q = `
SELECT id, creator_id, title, settings, created_at
FROM interviews
WHERE id = $1 AND creator_id = $2
`
	var iv model.Interview
	row := r.db.QueryRow(ctx, q, id, creatorID)
	if err := row.Scan(&iv.ID, &iv.CreatorID, &iv.Title, &iv.Settings, &iv.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Interview{}, apperror.Wrap(apperror.NotFound, "interview not found", err)
		}
		return model.Interview{}, fmt.Errorf("scan interview: %w", err)
	}
	return iv, nil
}

// GetInterview fetches an interview without ownership scoping. Used by the
// candidate-facing flow, which addresses interviews by shared link.
func (r *Repository) GetInterview(ctx context.Context, id uuid.UUID) (model.Interview, error) {
	const q = `
SELECT id, creator_id, title, settings, created_at
FROM interviews
WHERE id = $1
`
	var iv model.Interview
	row := r.db.QueryRow(ctx, q, id)
	if err := row.Scan(&iv.ID, &iv.CreatorID, &iv.Title, &iv.Settings, &iv.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Interview{}, apperror.Wrap(apperror.NotFound, "interview not found", err)
		}
		return model.Interview{}, fmt.Errorf("scan interview: %w", err)
	}
	return iv, nil
}

// ListInterviewsByCreator returns all interviews owned by the creator, most
// recent first.
func (r *Repository) ListInterviewsByCreator(ctx context.Context, creatorID uuid.UUID) ([]model.Interview, error) {
	const q = `
SELECT id, creator_id, title, settings, created_at
FROM interviews
WHERE creator_id = $1
ORDER BY created_at DESC
`
	rows, err := r.db.Query(ctx, q, creatorID)
	if err != nil {
		return nil, fmt.Errorf("query interviews: %w", err)
	}
	defer rows.Close()

	out := make([]model.Interview, 0)
	for rows.Next() {
		var iv model.Interview
		if err := rows.Scan(&iv.ID, &iv.CreatorID, &iv.Title, &iv.Settings, &iv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan interview row: %w", err)
		}
		out = append(out, iv)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}
