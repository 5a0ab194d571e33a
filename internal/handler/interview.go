package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nkroberts01/virtual-interviews/internal/apperror"
	"github.com/nkroberts01/virtual-interviews/pkg/model"
	"github.com/nkroberts01/virtual-interviews/pkg/response"
)

// CreateInterview validates and creates an interview configuration owned by
// the session user. Title and settings are normalized before anything is
// written; the insert is a single row, so either one fully normalized
// interview exists afterwards or none does.
func (h *Handler) CreateInterview(c *gin.Context) {
	var req model.CreateInterviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "", "")
		return
	}

	title := model.NormalizeTitle(req.Title)
	settings := model.NormalizeSettings(req.Questions, req.AllowRetakes, req.MaxAttempts)

	iv, err := h.Interviews.CreateInterview(c.Request.Context(), claims.UserID, title, settings)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to create interview", "creator_id", claims.UserID, "err", err)
		response.Error(c, err)
		return
	}

	response.Created(c, iv)
}

// ListInterviews returns the session user's interviews, most recent first.
func (h *Handler) ListInterviews(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "", "")
		return
	}

	interviews, err := h.Interviews.ListInterviewsByCreator(c.Request.Context(), claims.UserID)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to list interviews", "creator_id", claims.UserID, "err", err)
		response.Error(c, err)
		return
	}

	response.OK(c, interviews)
}

// GetInterview loads one owned interview together with its applications. The
// interview fetch runs first; only when it succeeds are the applications
// queried. An interview owned by someone else yields the same not-found result
// as a missing one.
func (h *Handler) GetInterview(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "", "")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.NotFound(c, "interview not found")
		return
	}

	ctx := c.Request.Context()
	iv, err := h.Interviews.GetInterviewOwned(ctx, id, claims.UserID)
	if err != nil {
		if apperror.KindOf(err) != apperror.NotFound {
			h.Logger.Sugar().Errorw("failed to get interview", "interview_id", id, "err", err)
		}
		response.Error(c, err)
		return
	}

	apps, err := h.Applications.ListApplicationsByInterview(ctx, iv.ID)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to list applications", "interview_id", iv.ID, "err", err)
		response.Error(c, err)
		return
	}

	response.OK(c, model.InterviewDetail{Interview: iv, Applications: apps})
}
