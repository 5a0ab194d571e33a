package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nkroberts01/virtual-interviews/internal/auth"
	"github.com/nkroberts01/virtual-interviews/internal/session"
	"github.com/nkroberts01/virtual-interviews/pkg/model"
)

// UserStore is the slice of the repository the auth handlers need.
type UserStore interface {
	CreateUser(ctx context.Context, email, passwordHash string) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error)
	ConfirmUser(ctx context.Context, id uuid.UUID) error
}

// InterviewStore covers the configuration, listing and review workflows.
type InterviewStore interface {
	CreateInterview(ctx context.Context, creatorID uuid.UUID, title string, settings model.InterviewSettings) (model.Interview, error)
	GetInterviewOwned(ctx context.Context, id, creatorID uuid.UUID) (model.Interview, error)
	GetInterview(ctx context.Context, id uuid.UUID) (model.Interview, error)
	ListInterviewsByCreator(ctx context.Context, creatorID uuid.UUID) ([]model.Interview, error)
}

// ApplicationStore covers the candidate flow and the review listing.
type ApplicationStore interface {
	CreateApplication(ctx context.Context, interviewID uuid.UUID, candidateEmail string) (model.Application, error)
	GetApplication(ctx context.Context, id uuid.UUID) (model.Application, error)
	ListApplicationsByInterview(ctx context.Context, interviewID uuid.UUID) ([]model.Application, error)
	AttachVideo(ctx context.Context, id uuid.UUID, videoURL string) (model.Application, error)
}

type Handler struct {
	Logger       *zap.Logger
	Users        UserStore
	Interviews   InterviewStore
	Applications ApplicationStore
	TokenMaker   *auth.JWTMaker
	Sessions     session.Store
	Hub          *session.Hub
	AccessTTL    time.Duration
	ConfirmTTL   time.Duration
}

// GetClaimsFromContext retrieves the verified claims set by the auth gate.
func (h *Handler) GetClaimsFromContext(c *gin.Context) *auth.UserClaims {
	v, exists := c.Get("claims")
	if !exists {
		return nil
	}

	claims, ok := v.(*auth.UserClaims)
	if !ok {
		return nil
	}
	return claims
}
