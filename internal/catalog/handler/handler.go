package handler

import (
	"net/http"

	"storefront-server/internal/apierrors"
	"storefront-server/internal/catalog/processor"
	"storefront-server/internal/clients/platform"
	"storefront-server/internal/observability"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	processor processor.CatalogProcessor
	logger    *observability.Logger
}

func New(processor processor.CatalogProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

// HandleListProducts handles GET /api/products
func (h *Handler) HandleListProducts(c *gin.Context) {
	ctx := c.Request.Context()

	products, err := h.processor.ListProducts(ctx)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// HandleGetProduct handles GET /api/products/:product_id
func (h *Handler) HandleGetProduct(c *gin.Context) {
	ctx := c.Request.Context()

	product, err := h.processor.GetProduct(ctx, c.Param("product_id"))
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

type SpecificationRequest struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type CreateProductRequest struct {
	Name           string                 `json:"name" binding:"required,max=200"`
	Category       string                 `json:"category" binding:"required"`
	Type           string                 `json:"type" binding:"required"`
	Description    string                 `json:"description"`
	Features       []string               `json:"features"`
	Specifications []SpecificationRequest `json:"specifications"`
	Images         []string               `json:"images"`
	Price          float64                `json:"price" binding:"gte=0"`
	ActualPrice    float64                `json:"actual_price" binding:"gte=0"`
	Points         int                    `json:"points" binding:"gte=0"`
}

// HandleCreateProduct handles POST /api/admin/products
func (h *Handler) HandleCreateProduct(c *gin.Context) {
	ctx := c.Request.Context()

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error(ctx, "failed to bind create product request", err)
		apierrors.RespondWithValidationError(c, err)
		return
	}

	specs := make([]platform.Specification, 0, len(req.Specifications))
	for _, s := range req.Specifications {
		specs = append(specs, platform.Specification{Label: s.Label, Value: s.Value})
	}

	product, err := h.processor.CreateProduct(ctx, processor.CreateProductRequest{
		Name:           req.Name,
		Category:       req.Category,
		Type:           req.Type,
		Description:    req.Description,
		Features:       req.Features,
		Specifications: specs,
		Images:         req.Images,
		Price:          req.Price,
		ActualPrice:    req.ActualPrice,
		Points:         req.Points,
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}
