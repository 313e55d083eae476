package leaderboard

import (
	"net/http"
	"strconv"

	"storefront-server/internal/apierrors"
	"storefront-server/internal/observability"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
	logger  *observability.Logger
}

func NewHandler(service *Service, logger *observability.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// HandleGetLeaderboard handles GET /api/leaderboard?limit=N
func (h *Handler) HandleGetLeaderboard(c *gin.Context) {
	limit := DefaultLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "limit must be a positive integer"))
			return
		}
		limit = n
	}

	board, err := h.service.Top(c.Request.Context(), limit)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, board)
}
