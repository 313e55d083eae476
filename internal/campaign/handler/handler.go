package handler

import (
	"net/http"

	"storefront-server/internal/apierrors"
	"storefront-server/internal/campaign/processor"
	"storefront-server/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	processor processor.CampaignProcessor
	logger    *observability.Logger
}

func New(processor processor.CampaignProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

// CreateCampaignRequest represents an admin campaign definition in HTTP request
type CreateCampaignRequest struct {
	Title       string   `json:"title" binding:"required,max=200"`
	Description string   `json:"description" binding:"max=2000"`
	Platforms   []string `json:"platforms"`
	Images      []string `json:"images" binding:"omitempty,dive,url"`
	Active      *bool    `json:"active,omitempty"`
}

// UpdateCampaignRequest represents a partial campaign update in HTTP request
type UpdateCampaignRequest struct {
	Title       *string   `json:"title,omitempty" binding:"omitempty,max=200"`
	Description *string   `json:"description,omitempty" binding:"omitempty,max=2000"`
	Platforms   *[]string `json:"platforms,omitempty"`
	Images      *[]string `json:"images,omitempty"`
	Active      *bool     `json:"active,omitempty"`
}

// SubmitProofRequest carries the proof of a promotion
type SubmitProofRequest struct {
	Text string `json:"text" binding:"max=2000"`
	URL  string `json:"url" binding:"max=2048"`
}

func sessionID(c *gin.Context) (string, bool) {
	id := c.GetString("Session-ID")
	return id, id != ""
}

// HandleListAvailable handles GET /api/campaigns
func (h *Handler) HandleListAvailable(c *gin.Context) {
	ctx := c.Request.Context()

	session, ok := sessionID(c)
	if !ok {
		apierrors.RespondWithError(c, apierrors.Unauthorized("Session ID not found in context"))
		return
	}

	campaigns, err := h.processor.ListAvailable(ctx, session)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"campaigns": campaigns})
}

// HandleStart handles POST /api/campaigns/:campaign_id/start
func (h *Handler) HandleStart(c *gin.Context) {
	ctx := c.Request.Context()

	session, ok := sessionID(c)
	if !ok {
		apierrors.RespondWithError(c, apierrors.Unauthorized("Session ID not found in context"))
		return
	}

	state, err := h.processor.StartCampaign(ctx, session, c.Param("campaign_id"))
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// HandleSubmit handles POST /api/campaigns/:campaign_id/submit
func (h *Handler) HandleSubmit(c *gin.Context) {
	ctx := c.Request.Context()

	session, ok := sessionID(c)
	if !ok {
		apierrors.RespondWithError(c, apierrors.Unauthorized("Session ID not found in context"))
		return
	}

	var req SubmitProofRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error(ctx, "failed to bind submit proof request", err)
		apierrors.RespondWithValidationError(c, err)
		return
	}

	state, err := h.processor.SubmitProof(ctx, session, c.Param("campaign_id"), req.Text, req.URL)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// HandleWithdraw handles DELETE /api/campaigns/:campaign_id/submit
func (h *Handler) HandleWithdraw(c *gin.Context) {
	ctx := c.Request.Context()

	session, ok := sessionID(c)
	if !ok {
		apierrors.RespondWithError(c, apierrors.Unauthorized("Session ID not found in context"))
		return
	}

	state, err := h.processor.WithdrawSubmission(ctx, session, c.Param("campaign_id"))
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// HandleListCampaigns handles GET /api/admin/campaigns
func (h *Handler) HandleListCampaigns(c *gin.Context) {
	campaigns, err := h.processor.ListCampaigns(c.Request.Context())
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"campaigns": campaigns})
}

// HandleCreateCampaign handles POST /api/admin/campaigns
func (h *Handler) HandleCreateCampaign(c *gin.Context) {
	ctx := c.Request.Context()

	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error(ctx, "failed to bind create campaign request", err)
		apierrors.RespondWithValidationError(c, err)
		return
	}

	campaign, err := h.processor.CreateCampaign(ctx, processor.CreateCampaignRequest{
		Title:       req.Title,
		Description: req.Description,
		Platforms:   req.Platforms,
		Images:      req.Images,
		Active:      req.Active,
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, campaign)
}

// HandleUpdateCampaign handles PUT /api/admin/campaigns/:campaign_id
func (h *Handler) HandleUpdateCampaign(c *gin.Context) {
	ctx := c.Request.Context()

	var req UpdateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error(ctx, "failed to bind update campaign request", err)
		apierrors.RespondWithValidationError(c, err)
		return
	}

	campaign, err := h.processor.UpdateCampaign(ctx, c.Param("campaign_id"), processor.UpdateCampaignRequest{
		Title:       req.Title,
		Description: req.Description,
		Platforms:   req.Platforms,
		Images:      req.Images,
		Active:      req.Active,
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, campaign)
}

// HandleToggleCampaign handles POST /api/admin/campaigns/:campaign_id/toggle
func (h *Handler) HandleToggleCampaign(c *gin.Context) {
	campaign, err := h.processor.ToggleCampaign(c.Request.Context(), c.Param("campaign_id"))
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, campaign)
}

// HandleDeleteCampaign handles DELETE /api/admin/campaigns/:campaign_id
func (h *Handler) HandleDeleteCampaign(c *gin.Context) {
	if err := h.processor.DeleteCampaign(c.Request.Context(), c.Param("campaign_id")); err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// HandleApprove handles POST /api/admin/campaigns/:campaign_id/participants/:session_id/approve
func (h *Handler) HandleApprove(c *gin.Context) {
	ctx := c.Request.Context()

	participant := c.Param("session_id")
	if _, err := uuid.Parse(participant); err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "Invalid participant session ID"))
		return
	}

	state, err := h.processor.ApproveSubmission(ctx, participant, c.Param("campaign_id"))
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}
