package model

import (
	"time"

	"github.com/google/uuid"
)

type ApplicationStatus string

const (
	ApplicationStatusPending   ApplicationStatus = "pending"
	ApplicationStatusCompleted ApplicationStatus = "completed"
)

type Application struct {
	ID             uuid.UUID         `json:"id" db:"id"`
	InterviewID    uuid.UUID         `json:"interview_id" db:"interview_id"`
	CandidateEmail string            `json:"candidate_email" db:"candidate_email"`
	VideoURL       *string           `json:"video_url" db:"video_url"`
	Status         ApplicationStatus `json:"status" db:"status"`
	Attempts       int               `json:"attempts" db:"attempts"`
	CreatedAt      time.Time         `json:"created_at" db:"created_at"`
}

type ApplyReq struct {
	CandidateEmail string `json:"candidate_email" binding:"required,email"`
}

type SubmitVideoReq struct {
	VideoURL string `json:"video_url" binding:"required,url"`
}
