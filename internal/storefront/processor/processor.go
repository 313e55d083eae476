package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	catalogProcessor "storefront-server/internal/catalog/processor"
	"storefront-server/internal/observability"
	"storefront-server/internal/store"
)

// StorefrontStore defines the persistence operations required by StorefrontProcessor
type StorefrontStore interface {
	CreateStorefront(ctx context.Context, params store.CreateStorefrontParams) (store.Storefront, error)
	GetStorefrontByCode(ctx context.Context, code string) (store.Storefront, error)
	GetCurrentStorefront(ctx context.Context, sessionID string) (store.Storefront, error)
	UpdateStorefront(ctx context.Context, code string, fn func(st *store.Storefront) error) (store.Storefront, error)
}

// ProductCatalog is the subset of the catalog used for product selection
type ProductCatalog interface {
	GetProduct(ctx context.Context, productID string) (catalogProcessor.Product, error)
	ListProducts(ctx context.Context) ([]catalogProcessor.Product, error)
}

// EventPublisher announces new stores
type EventPublisher interface {
	StoreCreated(ctx context.Context, sessionID string, st store.Storefront)
}

var (
	ErrStoreNameRequired     = errors.New("store name is required")
	ErrStoreNameTooLong      = errors.New("store name is too long")
	ErrStoreAlreadyExists    = errors.New("session already has a store")
	ErrNoStore               = errors.New("session has no store")
	ErrStoreNotFound         = errors.New("store not found")
	ErrStoreNameImmutable    = errors.New("store name cannot be changed")
	ErrInvalidStoreUpdate    = errors.New("invalid store update")
	ErrUnauthorized          = errors.New("store belongs to another session")
	ErrReferralCodeExhausted = errors.New("could not allocate a referral code")
	ErrProductNotFound       = errors.New("product not found")
)

const maxStoreNameLength = 100

type StorefrontProcessor struct {
	store     StorefrontStore
	catalog   ProductCatalog
	events    EventPublisher
	logger    *observability.Logger
	webAppURI string
	newCode   func() (string, error)
}

func New(store StorefrontStore, catalog ProductCatalog, events EventPublisher, logger *observability.Logger, webAppURI string) StorefrontProcessor {
	return StorefrontProcessor{
		store:     store,
		catalog:   catalog,
		events:    events,
		logger:    logger,
		webAppURI: strings.TrimRight(webAppURI, "/"),
		newCode:   GenerateReferralCode,
	}
}

// CreateStore creates the session's store under a fresh referral code.
func (p *StorefrontProcessor) CreateStore(ctx context.Context, sessionID, name string) (store.Storefront, error) {
	name = strings.TrimSpace(name)
	ctx = observability.WithFields(ctx, observability.Field{Key: "store_name", Value: name})

	if name == "" {
		return store.Storefront{}, ErrStoreNameRequired
	}
	if len([]rune(name)) > maxStoreNameLength {
		return store.Storefront{}, ErrStoreNameTooLong
	}

	created, err := p.store.CreateStorefront(ctx, store.CreateStorefrontParams{
		SessionID: sessionID,
		Name:      name,
		NewCode:   p.newCode,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrAlreadyExists):
			return store.Storefront{}, ErrStoreAlreadyExists
		case errors.Is(err, store.ErrCodesExhausted):
			p.logger.Error(ctx, "referral code space exhausted", err)
			return store.Storefront{}, ErrReferralCodeExhausted
		}
		p.logger.Error(ctx, "failed to create store", err)
		return store.Storefront{}, err
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "referral_code", Value: created.ReferralCode})
	p.logger.Info(ctx, "store created")
	p.events.StoreCreated(ctx, sessionID, created)

	return created, nil
}

// GetCurrentStore returns the session's store.
func (p *StorefrontProcessor) GetCurrentStore(ctx context.Context, sessionID string) (store.Storefront, error) {
	st, err := p.store.GetCurrentStorefront(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Storefront{}, ErrNoStore
		}
		p.logger.Error(ctx, "failed to get current store", err)
		return store.Storefront{}, err
	}
	return st, nil
}

// GetStoreByReferralCode resolves any store by its code, case-insensitively.
func (p *StorefrontProcessor) GetStoreByReferralCode(ctx context.Context, code string) (store.Storefront, error) {
	code = NormalizeReferralCode(code)
	ctx = observability.WithFields(ctx, observability.Field{Key: "referral_code", Value: code})

	if code == "" {
		return store.Storefront{}, ErrStoreNotFound
	}

	st, err := p.store.GetStorefrontByCode(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Storefront{}, ErrStoreNotFound
		}
		p.logger.Error(ctx, "failed to get store by referral code", err)
		return store.Storefront{}, err
	}
	return st, nil
}

// UpdateStore saves the session's store record. Only the product selection
// is writable here; the name, the code, the order history and the totals must
// match what is stored, since orders arrive through the ledger alone.
func (p *StorefrontProcessor) UpdateStore(ctx context.Context, sessionID string, update store.Storefront) (store.Storefront, error) {
	update.ReferralCode = NormalizeReferralCode(update.ReferralCode)
	ctx = observability.WithFields(ctx, observability.Field{Key: "referral_code", Value: update.ReferralCode})

	current, err := p.GetCurrentStore(ctx, sessionID)
	if err != nil {
		return store.Storefront{}, err
	}
	if update.ReferralCode != current.ReferralCode {
		if _, err := p.GetStoreByReferralCode(ctx, update.ReferralCode); err != nil {
			return store.Storefront{}, err
		}
		return store.Storefront{}, ErrUnauthorized
	}
	if err := update.CheckTotals(); err != nil {
		return store.Storefront{}, fmt.Errorf("%w: %v", ErrInvalidStoreUpdate, err)
	}

	updated, err := p.store.UpdateStorefront(ctx, current.ReferralCode, func(st *store.Storefront) error {
		if strings.TrimSpace(update.Name) != st.Name {
			return ErrStoreNameImmutable
		}
		if update.TotalOrders != st.TotalOrders || update.TotalPoints != st.TotalPoints {
			return fmt.Errorf("%w: totals are maintained by the order ledger", ErrInvalidStoreUpdate)
		}
		if !sameOrders(st.Orders, update.Orders) {
			return fmt.Errorf("%w: recorded orders cannot be added, removed or rewritten", ErrInvalidStoreUpdate)
		}

		st.SelectedProducts = dedupe(update.SelectedProducts)
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrStoreNameImmutable), errors.Is(err, ErrInvalidStoreUpdate):
			return store.Storefront{}, err
		case errors.Is(err, store.ErrInvalidStoreData):
			return store.Storefront{}, fmt.Errorf("%w: %v", ErrInvalidStoreUpdate, err)
		case errors.Is(err, store.ErrNotFound):
			return store.Storefront{}, ErrStoreNotFound
		}
		p.logger.Error(ctx, "failed to update store", err)
		return store.Storefront{}, err
	}

	p.logger.Info(ctx, "store updated")
	return updated, nil
}

// SelectProduct adds a catalog product to the session's store.
func (p *StorefrontProcessor) SelectProduct(ctx context.Context, sessionID, productID string) (store.Storefront, error) {
	productID = strings.TrimSpace(productID)
	ctx = observability.WithFields(ctx, observability.Field{Key: "product_id", Value: productID})

	current, err := p.GetCurrentStore(ctx, sessionID)
	if err != nil {
		return store.Storefront{}, err
	}
	if current.HasProduct(productID) {
		return current, nil
	}

	if _, err := p.catalog.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, catalogProcessor.ErrProductNotFound) || errors.Is(err, catalogProcessor.ErrProductIDRequired) {
			return store.Storefront{}, ErrProductNotFound
		}
		return store.Storefront{}, err
	}

	return p.updateSelection(ctx, current.ReferralCode, func(st *store.Storefront) {
		if !st.HasProduct(productID) {
			st.SelectedProducts = append(st.SelectedProducts, productID)
		}
	})
}

// DeselectProduct removes a product from the session's store. Removing a
// product that is not selected is a no-op.
func (p *StorefrontProcessor) DeselectProduct(ctx context.Context, sessionID, productID string) (store.Storefront, error) {
	productID = strings.TrimSpace(productID)
	ctx = observability.WithFields(ctx, observability.Field{Key: "product_id", Value: productID})

	current, err := p.GetCurrentStore(ctx, sessionID)
	if err != nil {
		return store.Storefront{}, err
	}
	if !current.HasProduct(productID) {
		return current, nil
	}

	return p.updateSelection(ctx, current.ReferralCode, func(st *store.Storefront) {
		kept := st.SelectedProducts[:0]
		for _, id := range st.SelectedProducts {
			if id != productID {
				kept = append(kept, id)
			}
		}
		st.SelectedProducts = kept
	})
}

func (p *StorefrontProcessor) updateSelection(ctx context.Context, code string, fn func(st *store.Storefront)) (store.Storefront, error) {
	updated, err := p.store.UpdateStorefront(ctx, code, func(st *store.Storefront) error {
		fn(st)
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Storefront{}, ErrStoreNotFound
		}
		p.logger.Error(ctx, "failed to update product selection", err)
		return store.Storefront{}, err
	}
	return updated, nil
}

// sameOrders reports whether next carries exactly the purchase snapshots of
// prev. Status and UpdatedAt belong to the admin ledger and are not compared.
func sameOrders(prev, next []store.Order) bool {
	if len(next) != len(prev) {
		return false
	}
	for i := range prev {
		a, b := prev[i], next[i]
		if a.ID != b.ID ||
			a.ProductID != b.ProductID ||
			a.ProductName != b.ProductName ||
			a.ProductImage != b.ProductImage ||
			a.Price != b.Price ||
			a.Points != b.Points ||
			a.ReferralCode != b.ReferralCode ||
			a.BillingDetails != b.BillingDetails ||
			!a.CreatedAt.Equal(b.CreatedAt) {
			return false
		}
	}
	return true
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
