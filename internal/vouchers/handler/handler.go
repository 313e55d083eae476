package handler

import (
	"net/http"

	"storefront-server/internal/apierrors"
	"storefront-server/internal/observability"
	"storefront-server/internal/vouchers/processor"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	processor processor.VoucherProcessor
	logger    *observability.Logger
}

func New(processor processor.VoucherProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

// HandleGetOffers handles GET /api/offers
func (h *Handler) HandleGetOffers(c *gin.Context) {
	ctx := c.Request.Context()

	sessionID := c.GetString("Session-ID")
	if sessionID == "" {
		apierrors.RespondWithError(c, apierrors.Unauthorized("Session ID not found in context"))
		return
	}

	offers, err := h.processor.GetOffers(ctx, sessionID)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, offers)
}

// HandleClaimWelcome handles POST /api/offers/welcome/claim
func (h *Handler) HandleClaimWelcome(c *gin.Context) {
	ctx := c.Request.Context()

	sessionID := c.GetString("Session-ID")
	if sessionID == "" {
		apierrors.RespondWithError(c, apierrors.Unauthorized("Session ID not found in context"))
		return
	}

	result, err := h.processor.ClaimWelcomeVoucher(ctx, sessionID)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// HandleClaimReferral handles POST /api/offers/referral/claim
func (h *Handler) HandleClaimReferral(c *gin.Context) {
	ctx := c.Request.Context()

	sessionID := c.GetString("Session-ID")
	if sessionID == "" {
		apierrors.RespondWithError(c, apierrors.Unauthorized("Session ID not found in context"))
		return
	}

	result, err := h.processor.ClaimReferralVoucher(ctx, sessionID)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
