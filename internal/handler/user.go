package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nkroberts01/virtual-interviews/internal/session"
	"github.com/nkroberts01/virtual-interviews/pkg"
	"github.com/nkroberts01/virtual-interviews/pkg/model"
	"github.com/nkroberts01/virtual-interviews/pkg/response"
)

// SignUp creates an unconfirmed user and issues a confirmation token. Sign-in
// is refused until the token is redeemed.
func (h *Handler) SignUp(c *gin.Context) {
	var req model.SignUpReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Logger.Sugar().Warnw("signup bad request", "err", err)
		response.BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	pwHash, err := pkg.HashPassword(req.Password)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to hash password", "err", err)
		response.InternalError(c)
		return
	}

	user, err := h.Users.CreateUser(ctx, req.Email, pwHash)
	if err != nil {
		h.Logger.Sugar().Warnw("user create failed", "email", req.Email, "err", err)
		response.Error(c, err)
		return
	}

	token := uuid.New().String()
	if err := h.Sessions.PutConfirmation(ctx, token, user.ID, h.ConfirmTTL); err != nil {
		h.Logger.Sugar().Errorw("failed to store confirmation token", "err", err)
		response.InternalError(c)
		return
	}

	// The token would normally travel by email. There is no mailer here, so it
	// is returned in the response for the delivery layer to pick up.
	response.Created(c, gin.H{
		"user":               model.UserRes{ID: user.ID, Email: user.Email},
		"confirmation_token": token,
		"message":            "confirm your email before signing in",
	})
}

// Confirm redeems a signup confirmation token.
func (h *Handler) Confirm(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.BadRequest(c, "missing confirmation token")
		return
	}

	ctx := c.Request.Context()
	userID, err := h.Sessions.TakeConfirmation(ctx, token)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.Users.ConfirmUser(ctx, userID); err != nil {
		h.Logger.Sugar().Errorw("failed to confirm user", "user_id", userID, "err", err)
		response.Error(c, err)
		return
	}

	response.Message(c, "email confirmed, you can sign in now")
}

// Login verifies credentials, opens a session and returns a JWT. An optional
// ?next= query parameter, as set by the auth gate's redirect, is echoed back so
// the client can return the user to their original destination.
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Logger.Sugar().Warnw("login bad request", "err", err)
		response.BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	user, err := h.Users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		h.Logger.Sugar().Warnw("login user not found", "email", req.Email, "err", err)
		response.Unauthorized(c, "invalid credentials", "")
		return
	}
	if err := pkg.ComparePassword(user.PasswordHash, req.Password); err != nil {
		h.Logger.Sugar().Warnw("login password mismatch", "email", req.Email, "err", err)
		response.Unauthorized(c, "invalid credentials", "")
		return
	}
	if !user.Confirmed() {
		response.BadRequest(c, "email not confirmed")
		return
	}

	accessToken, claims, err := h.TokenMaker.GenerateToken(user.ID, user.Email, h.AccessTTL)
	if err != nil {
		h.Logger.Sugar().Errorw("error creating token", "err", err)
		response.InternalError(c)
		return
	}

	if err := h.Sessions.Put(ctx, claims.SessionID, user.ID, h.AccessTTL); err != nil {
		h.Logger.Sugar().Errorw("error creating session", "err", err)
		response.InternalError(c)
		return
	}

	h.Hub.Publish(session.Event{Type: session.EventSignedIn, SessionID: claims.SessionID, UserID: user.ID})

	response.OK(c, model.LoginRes{
		SessionID:   claims.SessionID,
		AccessToken: accessToken,
		ExpiresAt:   claims.RegisteredClaims.ExpiresAt.Time,
		Next:        c.Query("next"),
		User:        model.UserRes{ID: user.ID, Email: user.Email},
	})
}

// Me returns the current user profile.
func (h *Handler) Me(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "", "")
		return
	}

	user, err := h.Users.GetUserByID(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Unauthorized(c, "", "")
		return
	}

	response.OK(c, model.UserRes{ID: user.ID, Email: user.Email})
}

// Logout deletes the session and broadcasts the change so still-open gates
// revoke access immediately.
func (h *Handler) Logout(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "", "")
		return
	}

	if err := h.Sessions.Delete(c.Request.Context(), claims.SessionID); err != nil {
		h.Logger.Sugar().Errorw("failed to delete session", "session_id", claims.SessionID, "err", err)
		response.InternalError(c)
		return
	}

	h.Hub.Publish(session.Event{Type: session.EventSignedOut, SessionID: claims.SessionID, UserID: claims.UserID})

	response.Message(c, "signed out successfully")
}
