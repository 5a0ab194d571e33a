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

// CreateApplication inserts a pending application for an interview.
func (r *Repository) CreateApplication(ctx context.Context, interviewID uuid.UUID, candidateEmail string) (model.Application, error) {
	id := uuid.New()
	const q = `
INSERT INTO applications (id, interview_id, candidate_email, status, attempts, created_at)
VALUES ($1, $2, $3, $4, 0, now())
RETURNING created_at
`
	app := model.Application{
		ID:             id,
		InterviewID:    interviewID,
		CandidateEmail: candidateEmail,
		Status:         model.ApplicationStatusPending,
	}
	row := r.db.QueryRow(ctx, q, id, interviewID, candidateEmail, model.ApplicationStatusPending)
	if err := row.Scan(&app.CreatedAt); err != nil {
		return model.Application{}, apperror.FromStore(fmt.Errorf("insert application: %w", err), "application not found")
	}
	return app, nil
}

// GetApplication returns one application by id.
func (r *Repository) GetApplication(ctx context.Context, id uuid.UUID) (model.Application, error) {
	const q = `
SELECT id, interview_id, candidate_email, video_url, status, attempts, created_at
FROM applications
WHERE id = $1
`
	var app model.Application
	row := r.db.QueryRow(ctx, q, id)
	err := row.Scan(&app.ID, &app.InterviewID, &app.CandidateEmail, &app.VideoURL, &app.Status, &app.Attempts, &app.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Application{}, apperror.Wrap(apperror.NotFound, "application not found", err)
		}
		return model.Application{}, fmt.Errorf("scan application: %w", err)
	}
	return app, nil
}

// ListApplicationsByInterview returns every application for an interview, most
// recent first. The caller establishes ownership of the interview before
// asking for its applications.
func (r *Repository) ListApplicationsByInterview(ctx context.Context, interviewID uuid.UUID) ([]model.Application, error) {
	const q = `
SELECT id, interview_id, candidate_email, video_url, status, attempts, created_at
FROM applications
WHERE interview_id = $1
ORDER BY created_at DESC
`
	rows, err := r.db.Query(ctx, q, interviewID)
	if err != nil {
		return nil, fmt.Errorf("query applications: %w", err)
	}
	defer rows.Close()

	out := make([]model.Application, 0)
	for rows.Next() {
		var app model.Application
		if err := rows.Scan(&app.ID, &app.InterviewID, &app.CandidateEmail, &app.VideoURL, &app.Status, &app.Attempts, &app.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan application row: %w", err)
		}
		out = append(out, app)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}

// AttachVideo records a submitted video, bumps the attempt counter and marks
// the application completed.
func (r *Repository) AttachVideo(ctx context.Context, id uuid.UUID, videoURL string) (model.Application, error) {
	const q = `
UPDATE applications
SET video_url = $2, status = $3, attempts = attempts + 1
WHERE id = $1
RETURNING id, interview_id, candidate_email, video_url, status, attempts, created_at
`
	var app model.Application
	row := r.db.QueryRow(ctx, q, id, videoURL, model.ApplicationStatusCompleted)
	err := row.Scan(&app.ID, &app.InterviewID, &app.CandidateEmail, &app.VideoURL, &app.Status, &app.Attempts, &app.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Application{}, apperror.Wrap(apperror.NotFound, "application not found", err)
		}
		return model.Application{}, fmt.Errorf("attach video: %w", err)
	}
	return app, nil
}
