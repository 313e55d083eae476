package handler

import (
	"net/http"

	"storefront-server/internal/apierrors"
	"storefront-server/internal/observability"
	"storefront-server/internal/storefront/processor"
	"storefront-server/internal/store"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	processor processor.StorefrontProcessor
	logger    *observability.Logger
}

func New(processor processor.StorefrontProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

func sessionID(c *gin.Context) (string, bool) {
	v, exists := c.Get("Session-ID")
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

type CreateStoreRequest struct {
	Name string `json:"name" binding:"required"`
}

// HandleCreateStore handles POST /api/store
func (h *Handler) HandleCreateStore(c *gin.Context) {
	ctx := c.Request.Context()

	session, ok := sessionID(c)
	if !ok {
		apierrors.RespondWithError(c, apierrors.Unauthorized("Session ID not found in context"))
		return
	}

	var req CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error(ctx, "failed to bind create store request", err)
		apierrors.RespondWithValidationError(c, err)
		return
	}

	st, err := h.processor.CreateStore(ctx, session, req.Name)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, st)
}

// HandleGetStore handles GET /api/store
func (h *Handler) HandleGetStore(c *gin.Context) {
	ctx := c.Request.Context()

	session, ok := sessionID(c)
	if !ok {
		apierrors.RespondWithError(c, apierrors.Unauthorized("Session ID not found in context"))
		return
	}

	st, err := h.processor.GetCurrentStore(ctx, session)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, st)
}

// HandleUpdateStore handles PUT /api/store
func (h *Handler) HandleUpdateStore(c *gin.Context) {
	ctx := c.Request.Context()

	session, ok := sessionID(c)
	if !ok {
		apierrors.RespondWithError(c, apierrors.Unauthorized("Session ID not found in context"))
		return
	}

	var req store.Storefront
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error(ctx, "failed to bind update store request", err)
		apierrors.RespondWithValidationError(c, err)
		return
	}

	st, err := h.processor.UpdateStore(ctx, session, req)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, st)
}

// HandleSelectProduct handles POST /api/store/products/:product_id
func (h *Handler) HandleSelectProduct(c *gin.Context) {
	ctx := c.Request.Context()

	session, ok := sessionID(c)
	if !ok {
		apierrors.RespondWithError(c, apierrors.Unauthorized("Session ID not found in context"))
		return
	}

	st, err := h.processor.SelectProduct(ctx, session, c.Param("product_id"))
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, st)
}

// HandleDeselectProduct handles DELETE /api/store/products/:product_id
func (h *Handler) HandleDeselectProduct(c *gin.Context) {
	ctx := c.Request.Context()

	session, ok := sessionID(c)
	if !ok {
		apierrors.RespondWithError(c, apierrors.Unauthorized("Session ID not found in context"))
		return
	}

	st, err := h.processor.DeselectProduct(ctx, session, c.Param("product_id"))
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, st)
}

// HandleGetReferralLink handles GET /api/store/link
func (h *Handler) HandleGetReferralLink(c *gin.Context) {
	ctx := c.Request.Context()

	session, ok := sessionID(c)
	if !ok {
		apierrors.RespondWithError(c, apierrors.Unauthorized("Session ID not found in context"))
		return
	}

	resp, err := h.processor.GetReferralLink(ctx, session)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// HandleGetPointsSummary handles GET /api/store/points
func (h *Handler) HandleGetPointsSummary(c *gin.Context) {
	ctx := c.Request.Context()

	session, ok := sessionID(c)
	if !ok {
		apierrors.RespondWithError(c, apierrors.Unauthorized("Session ID not found in context"))
		return
	}

	summary, err := h.processor.GetPointsSummary(ctx, session)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// HandleGetPublicStorefront handles GET /api/storefronts/:code
func (h *Handler) HandleGetPublicStorefront(c *gin.Context) {
	ctx := c.Request.Context()

	public, err := h.processor.GetPublicStorefront(ctx, c.Param("code"))
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, public)
}
