package handler

import (
	"net/http"

	"storefront-server/internal/apierrors"
	"storefront-server/internal/ledger/processor"
	"storefront-server/internal/observability"
	"storefront-server/internal/store"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	processor processor.LedgerProcessor
	logger    *observability.Logger
}

func New(processor processor.LedgerProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

type BillingRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"required"`
	Address string `json:"address" binding:"required"`
	City    string `json:"city"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

func (b BillingRequest) toBilling() store.BillingDetails {
	return store.BillingDetails{
		Name:    b.Name,
		Email:   b.Email,
		Phone:   b.Phone,
		Address: b.Address,
		City:    b.City,
		ZipCode: b.ZipCode,
		Country: b.Country,
	}
}

type CheckoutRequest struct {
	ReferralCode string         `json:"referral_code"`
	ProductID    string         `json:"product_id" binding:"required"`
	Quantity     int            `json:"quantity" binding:"omitempty,gte=1"`
	Billing      BillingRequest `json:"billing" binding:"required"`
}

// HandleCheckout handles POST /api/checkout
func (h *Handler) HandleCheckout(c *gin.Context) {
	ctx := c.Request.Context()

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error(ctx, "failed to bind checkout request", err)
		apierrors.RespondWithValidationError(c, err)
		return
	}

	result, err := h.processor.PlaceOrder(ctx, processor.CheckoutRequest{
		ReferralCode: req.ReferralCode,
		ProductID:    req.ProductID,
		Quantity:     req.Quantity,
		Billing:      req.Billing.toBilling(),
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// HandleListMyOrders handles GET /api/store/orders
func (h *Handler) HandleListMyOrders(c *gin.Context) {
	ctx := c.Request.Context()

	sessionID := c.GetString("Session-ID")
	if sessionID == "" {
		apierrors.RespondWithError(c, apierrors.Unauthorized("Session ID not found in context"))
		return
	}

	orders, err := h.processor.ListMyOrders(ctx, sessionID)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// HandleListOrders handles GET /api/admin/orders
func (h *Handler) HandleListOrders(c *gin.Context) {
	ctx := c.Request.Context()

	orders, err := h.processor.ListOrders(ctx, c.Query("status"))
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// HandleListRemoteOrders handles GET /api/admin/orders/remote
func (h *Handler) HandleListRemoteOrders(c *gin.Context) {
	ctx := c.Request.Context()

	orders, err := h.processor.ListRemoteOrders(ctx)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

type RecordOrderRequest struct {
	ReferralCode string         `json:"referral_code" binding:"required"`
	OrderID      string         `json:"order_id"`
	ProductID    string         `json:"product_id" binding:"required"`
	ProductName  string         `json:"product_name"`
	ProductImage string         `json:"product_image"`
	Price        float64        `json:"price" binding:"gte=0"`
	Points       int            `json:"points" binding:"gte=0"`
	Status       string         `json:"status" binding:"max=32"`
	Billing      BillingRequest `json:"billing" binding:"required"`
}

// HandleRecordOrder handles POST /api/admin/orders
func (h *Handler) HandleRecordOrder(c *gin.Context) {
	ctx := c.Request.Context()

	var req RecordOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error(ctx, "failed to bind record order request", err)
		apierrors.RespondWithValidationError(c, err)
		return
	}

	order, err := h.processor.RecordOrder(ctx, store.Order{
		ID:             req.OrderID,
		ProductID:      req.ProductID,
		ProductName:    req.ProductName,
		ProductImage:   req.ProductImage,
		Price:          req.Price,
		Points:         req.Points,
		Status:         req.Status,
		BillingDetails: req.Billing.toBilling(),
	}, req.ReferralCode)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,max=32"`
}

// HandleUpdateOrderStatus handles PATCH /api/admin/orders/:order_id/status
func (h *Handler) HandleUpdateOrderStatus(c *gin.Context) {
	ctx := c.Request.Context()

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error(ctx, "failed to bind order status request", err)
		apierrors.RespondWithValidationError(c, err)
		return
	}

	order, err := h.processor.UpdateOrderStatus(ctx, c.Param("order_id"), req.Status)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order":        order,
		"known_status": processor.IsKnownStatus(order.Status),
	})
}
