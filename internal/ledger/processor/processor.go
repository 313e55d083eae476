package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	catalogProcessor "storefront-server/internal/catalog/processor"
	"storefront-server/internal/clients/platform"
	"storefront-server/internal/observability"
	"storefront-server/internal/store"

	"github.com/go-playground/validator/v10"
)

// OrderStore defines the persistence operations required by LedgerProcessor
type OrderStore interface {
	RecordOrder(ctx context.Context, order store.Order) error
	ListOrders(ctx context.Context) ([]store.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID, status string) (store.Order, error)
	GetCurrentStorefront(ctx context.Context, sessionID string) (store.Storefront, error)
}

// PlatformOrders is the remote order API
type PlatformOrders interface {
	CreateOrder(ctx context.Context, req platform.CreateOrderRequest) (platform.CreateOrderResponse, error)
	ListOrders(ctx context.Context) ([]platform.RemoteOrder, error)
}

// ProductCatalog resolves the product being bought
type ProductCatalog interface {
	GetProduct(ctx context.Context, productID string) (catalogProcessor.Product, error)
}

// EventPublisher announces ledger changes
type EventPublisher interface {
	OrderRecorded(ctx context.Context, order store.Order, attributed bool)
	OrderStatusChanged(ctx context.Context, order store.Order)
}

var (
	ErrInvalidOrder    = errors.New("invalid order")
	ErrInvalidStatus   = errors.New("invalid order status")
	ErrDuplicateOrder  = errors.New("order already recorded")
	ErrOrderNotFound   = errors.New("order not found")
	ErrStoreNotFound   = errors.New("no store with that referral code")
	ErrNoStore         = errors.New("session has no store")
	ErrProductNotFound = errors.New("product not found")
)

const maxStatusLength = 32

var knownStatuses = map[string]bool{
	store.OrderStatusPending:   true,
	store.OrderStatusCompleted: true,
	store.OrderStatusCancelled: true,
}

// IsKnownStatus reports whether status is one the admin screens offer.
// Other non-empty statuses are still accepted.
func IsKnownStatus(status string) bool {
	return knownStatuses[status]
}

type orderInput struct {
	ProductID string  `validate:"required"`
	Price     float64 `validate:"gte=0"`
	Points    int     `validate:"gte=0"`
	Name      string  `validate:"required"`
	Email     string  `validate:"required,email"`
	Phone     string  `validate:"required"`
	Address   string  `validate:"required"`
}

type LedgerProcessor struct {
	store    OrderStore
	platform PlatformOrders
	catalog  ProductCatalog
	events   EventPublisher
	logger   *observability.Logger
	validate *validator.Validate
	now      func() time.Time
}

func New(store OrderStore, platform PlatformOrders, catalog ProductCatalog, events EventPublisher, logger *observability.Logger) LedgerProcessor {
	return LedgerProcessor{
		store:    store,
		platform: platform,
		catalog:  catalog,
		events:   events,
		logger:   logger,
		validate: validator.New(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// RecordOrder appends order to the admin ledger and credits the store that
// owns referralCode. When no store owns the code the ledger entry is kept and
// ErrStoreNotFound is returned alongside the recorded order.
func (p *LedgerProcessor) RecordOrder(ctx context.Context, order store.Order, referralCode string) (store.Order, error) {
	order.ReferralCode = strings.ToUpper(strings.TrimSpace(referralCode))
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "referral_code", Value: order.ReferralCode},
		observability.Field{Key: "product_id", Value: order.ProductID},
	)

	if err := p.validateOrder(order); err != nil {
		return store.Order{}, err
	}

	if order.ID == "" {
		id, err := fallbackOrderID(p.now())
		if err != nil {
			p.logger.Error(ctx, "failed to generate order id", err)
			return store.Order{}, err
		}
		order.ID = id
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = p.now()
	}
	if order.Status == "" {
		order.Status = store.OrderStatusPending
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "order_id", Value: order.ID})

	err := p.store.RecordOrder(ctx, order)
	switch {
	case err == nil:
		p.logger.Info(ctx, "order recorded")
		p.events.OrderRecorded(ctx, order, true)
		return order, nil
	case errors.Is(err, store.ErrNotFound):
		p.logger.Warn(ctx, "order recorded without a matching store")
		p.events.OrderRecorded(ctx, order, false)
		return order, ErrStoreNotFound
	case errors.Is(err, store.ErrDuplicateOrder):
		return store.Order{}, ErrDuplicateOrder
	default:
		p.logger.Error(ctx, "failed to record order", err)
		return store.Order{}, err
	}
}

func (p *LedgerProcessor) validateOrder(order store.Order) error {
	input := orderInput{
		ProductID: strings.TrimSpace(order.ProductID),
		Price:     order.Price,
		Points:    order.Points,
		Name:      strings.TrimSpace(order.BillingDetails.Name),
		Email:     strings.TrimSpace(order.BillingDetails.Email),
		Phone:     strings.TrimSpace(order.BillingDetails.Phone),
		Address:   strings.TrimSpace(order.BillingDetails.Address),
	}
	if err := p.validate.Struct(input); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOrder, err)
	}
	return nil
}

// CheckoutRequest represents a purchase made from a store page
type CheckoutRequest struct {
	ReferralCode string
	ProductID    string
	Quantity     int
	Billing      store.BillingDetails
}

// CheckoutResult reports the recorded order. Attributed is false when the
// referral code matched no store; the purchase itself still went through.
type CheckoutResult struct {
	Order         store.Order `json:"order"`
	Attributed    bool        `json:"attributed"`
	Message       string      `json:"message"`
	RemoteOrderID string      `json:"remote_order_id,omitempty"`
	BillingID     string      `json:"billing_id,omitempty"`
}

// PlaceOrder creates the order on the platform first and only then records
// it locally, so a failed remote call leaves no local trace.
func (p *LedgerProcessor) PlaceOrder(ctx context.Context, req CheckoutRequest) (CheckoutResult, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "product_id", Value: req.ProductID},
		observability.Field{Key: "referral_code", Value: req.ReferralCode},
	)

	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 0 {
		return CheckoutResult{}, fmt.Errorf("%w: quantity must be positive", ErrInvalidOrder)
	}

	product, err := p.catalog.GetProduct(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, catalogProcessor.ErrProductNotFound) || errors.Is(err, catalogProcessor.ErrProductIDRequired) {
			return CheckoutResult{}, ErrProductNotFound
		}
		return CheckoutResult{}, err
	}

	order := store.Order{
		ProductID:      product.ID,
		ProductName:    product.Name,
		ProductImage:   product.Image,
		Price:          product.Price * float64(req.Quantity),
		Points:         product.Points * req.Quantity,
		BillingDetails: req.Billing,
	}
	if err := p.validateOrder(order); err != nil {
		return CheckoutResult{}, err
	}

	remote, err := p.platform.CreateOrder(ctx, platform.CreateOrderRequest{
		OrderData: platform.OrderData{
			ProductID:  product.ID,
			Quantity:   req.Quantity,
			TotalPrice: order.Price,
		},
		BillingData: platform.BillingData{
			Name:    req.Billing.Name,
			Email:   req.Billing.Email,
			Phone:   req.Billing.Phone,
			Address: req.Billing.Address,
			City:    req.Billing.City,
			ZipCode: req.Billing.ZipCode,
			Country: req.Billing.Country,
		},
	})
	if err != nil {
		p.logger.Error(ctx, "failed to create remote order", err)
		return CheckoutResult{}, err
	}
	order.ID = remote.OrderID

	recorded, err := p.RecordOrder(ctx, order, req.ReferralCode)
	switch {
	case err == nil:
		return CheckoutResult{
			Order:         recorded,
			Attributed:    true,
			Message:       fmt.Sprintf("Order placed. %d points credited to the store.", recorded.Points),
			RemoteOrderID: remote.OrderID,
			BillingID:     remote.BillingID,
		}, nil
	case errors.Is(err, ErrStoreNotFound):
		return CheckoutResult{
			Order:         recorded,
			Attributed:    false,
			Message:       "Order placed. The referral code did not match any store, so no points were credited.",
			RemoteOrderID: remote.OrderID,
			BillingID:     remote.BillingID,
		}, nil
	default:
		// The platform already holds this purchase; keep its ids for reconciliation.
		ctx = observability.WithFields(ctx,
			observability.Field{Key: "remote_order_id", Value: remote.OrderID},
			observability.Field{Key: "billing_id", Value: remote.BillingID},
		)
		p.logger.Error(ctx, "remote order accepted but not recorded locally", err)
		return CheckoutResult{}, err
	}
}

// ListOrders returns the admin ledger newest first, optionally filtered by status.
func (p *LedgerProcessor) ListOrders(ctx context.Context, status string) ([]store.Order, error) {
	status = strings.ToLower(strings.TrimSpace(status))

	orders, err := p.store.ListOrders(ctx)
	if err != nil {
		p.logger.Error(ctx, "failed to list orders", err)
		return nil, err
	}
	if status == "" {
		return orders, nil
	}

	filtered := make([]store.Order, 0, len(orders))
	for _, o := range orders {
		if o.Status == status {
			filtered = append(filtered, o)
		}
	}
	return filtered, nil
}

// ListMyOrders returns the orders credited to the session's store, newest first.
func (p *LedgerProcessor) ListMyOrders(ctx context.Context, sessionID string) ([]store.Order, error) {
	st, err := p.store.GetCurrentStorefront(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNoStore
		}
		p.logger.Error(ctx, "failed to get current store", err)
		return nil, err
	}

	orders := append([]store.Order(nil), st.Orders...)
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	if orders == nil {
		orders = []store.Order{}
	}
	return orders, nil
}

// ListRemoteOrders passes the platform's order list through for the admin view.
func (p *LedgerProcessor) ListRemoteOrders(ctx context.Context) ([]platform.RemoteOrder, error) {
	orders, err := p.platform.ListOrders(ctx)
	if err != nil {
		p.logger.Error(ctx, "failed to list remote orders", err)
		return nil, err
	}
	if orders == nil {
		orders = []platform.RemoteOrder{}
	}
	return orders, nil
}

// UpdateOrderStatus sets the fulfillment status of a recorded order.
func (p *LedgerProcessor) UpdateOrderStatus(ctx context.Context, orderID, status string) (store.Order, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "order_id", Value: orderID},
		observability.Field{Key: "status", Value: status},
	)

	if status == "" || len(status) > maxStatusLength {
		return store.Order{}, ErrInvalidStatus
	}
	if !IsKnownStatus(status) {
		p.logger.Warn(ctx, "order moved to a custom status")
	}

	order, err := p.store.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Order{}, ErrOrderNotFound
		}
		p.logger.Error(ctx, "failed to update order status", err)
		return store.Order{}, err
	}

	p.logger.Info(ctx, "order status updated")
	p.events.OrderStatusChanged(ctx, order)
	return order, nil
}

// fallbackOrderID is used when the platform did not assign an id.
func fallbackOrderID(now time.Time) (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return fmt.Sprintf("ORD-%d-%s", now.UnixMilli(), hex.EncodeToString(b)), nil
}
