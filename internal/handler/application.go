package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nkroberts01/virtual-interviews/internal/apperror"
	"github.com/nkroberts01/virtual-interviews/pkg/model"
	"github.com/nkroberts01/virtual-interviews/pkg/response"
)

// Apply is the candidate-facing entry point: it creates a pending application
// for an interview reached through its shared link. No session is required.
func (h *Handler) Apply(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.NotFound(c, "interview not found")
		return
	}

	var req model.ApplyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	if _, err := h.Interviews.GetInterview(ctx, id); err != nil {
		response.Error(c, err)
		return
	}

	app, err := h.Applications.CreateApplication(ctx, id, req.CandidateEmail)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to create application", "interview_id", id, "err", err)
		response.Error(c, err)
		return
	}

	response.Created(c, app)
}

// SubmitVideo attaches a recorded response to an application and moves it to
// completed. The owning interview's settings decide whether another attempt is
// allowed: retakes only when allowRetakes is set and the attempt count is
// still below maxAttempts.
func (h *Handler) SubmitVideo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.NotFound(c, "application not found")
		return
	}

	var req model.SubmitVideoReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	app, err := h.Applications.GetApplication(ctx, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	iv, err := h.Interviews.GetInterview(ctx, app.InterviewID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if app.Attempts >= 1 && !iv.Settings.AllowRetakes {
		response.Error(c, apperror.New(apperror.Validation, "retakes are not allowed for this interview"))
		return
	}
	if app.Attempts >= iv.Settings.MaxAttempts {
		response.Error(c, apperror.New(apperror.Validation, "maximum number of attempts reached"))
		return
	}

	updated, err := h.Applications.AttachVideo(ctx, app.ID, req.VideoURL)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to attach video", "application_id", app.ID, "err", err)
		response.Error(c, err)
		return
	}

	response.OK(c, updated)
}
