package handler

import (
	"net/http"
	"strings"

	"storefront-server/internal/apierrors"
	"storefront-server/internal/auth/processor"
	"storefront-server/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionHeader carries the client generated session id
const SessionHeader = "X-Session-ID"

type Handler struct {
	authProcessor processor.AuthProcessor
	logger        *observability.Logger
}

type RegisterRequest struct {
	Mobile       string `json:"mobile_no" binding:"required,min=7,max=16"`
	Username     string `json:"username" binding:"required,max=100"`
	Password     string `json:"password" binding:"required,min=6"`
	Email        string `json:"email" binding:"omitempty,email"`
	ReferralCode string `json:"referral_code" binding:"max=16"`
}

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name   string `json:"name" binding:"required,max=100"`
	Mobile string `json:"mobile" binding:"max=20"`
}

type SetLanguageRequest struct {
	Language string `json:"language" binding:"required"`
}

func New(authProcessor processor.AuthProcessor, logger *observability.Logger) Handler {
	return Handler{authProcessor: authProcessor, logger: logger}
}

// HandleSessionMiddleware requires a UUID session header and exposes it as
// Session-ID to the handlers behind it.
func (h *Handler) HandleSessionMiddleware(c *gin.Context) {
	raw := strings.TrimSpace(c.GetHeader(SessionHeader))
	if raw == "" {
		apierrors.RespondWithError(c, apierrors.Unauthorized("Session header is missing"))
		return
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidSession, "Session header must be a UUID"))
		return
	}

	sessionID := id.String()
	ctx := observability.WithFields(c.Request.Context(), observability.Field{Key: "session_id", Value: sessionID})
	c.Request = c.Request.WithContext(ctx)
	c.Set("Session-ID", sessionID)
	c.Next()
}

// HandleRequireAdmin must run after HandleSessionMiddleware.
func (h *Handler) HandleRequireAdmin(c *gin.Context) {
	ctx := c.Request.Context()

	sessionID := c.GetString("Session-ID")
	if sessionID == "" {
		apierrors.RespondWithError(c, apierrors.Unauthorized("Session ID not found in context"))
		return
	}

	admin, err := h.authProcessor.IsAdmin(ctx, sessionID)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}
	if !admin {
		h.logger.Warn(ctx, "admin route refused")
		apierrors.RespondWithError(c, apierrors.Forbidden(apierrors.CodeAdminRequired, "Admin access required"))
		return
	}
	c.Next()
}

// HandleRegister handles POST /api/auth/register?ref=<code>
func (h *Handler) HandleRegister(c *gin.Context) {
	ctx := c.Request.Context()

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error(ctx, "failed to bind register request", err)
		apierrors.RespondWithValidationError(c, err)
		return
	}

	profile, err := h.authProcessor.Register(ctx, c.GetString("Session-ID"), processor.RegisterRequest{
		Mobile:       req.Mobile,
		Username:     req.Username,
		Password:     req.Password,
		Email:        req.Email,
		ReferralCode: req.ReferralCode,
	}, c.Query("ref"))
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, profile)
}

// HandleLogin handles POST /api/auth/login
func (h *Handler) HandleLogin(c *gin.Context) {
	ctx := c.Request.Context()

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error(ctx, "failed to bind login request", err)
		apierrors.RespondWithValidationError(c, err)
		return
	}

	profile, err := h.authProcessor.Login(ctx, c.GetString("Session-ID"), req.Login, req.Password)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// HandleLogout handles POST /api/auth/logout
func (h *Handler) HandleLogout(c *gin.Context) {
	if err := h.authProcessor.Logout(c.Request.Context(), c.GetString("Session-ID")); err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// HandleGetProfile handles GET /api/profile
func (h *Handler) HandleGetProfile(c *gin.Context) {
	profile, err := h.authProcessor.GetProfile(c.Request.Context(), c.GetString("Session-ID"))
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// HandleUpdateProfile handles PUT /api/profile
func (h *Handler) HandleUpdateProfile(c *gin.Context) {
	ctx := c.Request.Context()

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error(ctx, "failed to bind update profile request", err)
		apierrors.RespondWithValidationError(c, err)
		return
	}

	profile, err := h.authProcessor.UpdateProfile(ctx, c.GetString("Session-ID"), req.Name, req.Mobile)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// HandleSetLanguage handles PUT /api/profile/language
func (h *Handler) HandleSetLanguage(c *gin.Context) {
	ctx := c.Request.Context()

	var req SetLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error(ctx, "failed to bind set language request", err)
		apierrors.RespondWithValidationError(c, err)
		return
	}

	profile, err := h.authProcessor.SetLanguage(ctx, c.GetString("Session-ID"), req.Language)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
