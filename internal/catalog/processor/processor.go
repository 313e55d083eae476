package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"context"
	"errors"
	"math"
	"strings"

	"storefront-server/internal/clients/platform"
	"storefront-server/internal/observability"
)

// PlatformCatalog defines the remote catalog calls required by CatalogProcessor
type PlatformCatalog interface {
	ListProducts(ctx context.Context) ([]platform.ProductOut, error)
	GetProduct(ctx context.Context, productID string) (platform.ProductOut, error)
	CreateProduct(ctx context.Context, req platform.CreateProductRequest) (platform.ProductOut, error)
}

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrProductIDRequired = errors.New("product id is required")
	ErrInvalidProduct    = errors.New("invalid product")
)

// Product is the flattened catalog entry the storefront screens render.
type Product struct {
	ID             string                   `json:"id"`
	Name           string                   `json:"name"`
	Category       string                   `json:"category"`
	Type           string                   `json:"type"`
	Description    string                   `json:"description"`
	Price          float64                  `json:"price"`
	ActualPrice    float64                  `json:"actual_price"`
	Profit         float64                  `json:"profit"`
	Margin         float64                  `json:"margin"`
	Points         int                      `json:"points"`
	Image          string                   `json:"image"`
	Images         []string                 `json:"images"`
	Features       []string                 `json:"features"`
	Specifications []platform.Specification `json:"specifications"`
}

type CatalogProcessor struct {
	platform PlatformCatalog
	logger   *observability.Logger
}

func New(platform PlatformCatalog, logger *observability.Logger) CatalogProcessor {
	return CatalogProcessor{
		platform: platform,
		logger:   logger,
	}
}

// ListProducts returns the whole remote catalog.
func (p *CatalogProcessor) ListProducts(ctx context.Context) ([]Product, error) {
	remote, err := p.platform.ListProducts(ctx)
	if err != nil {
		p.logger.Error(ctx, "failed to list products", err)
		return nil, err
	}

	products := make([]Product, 0, len(remote))
	for _, r := range remote {
		products = append(products, FromRemote(r))
	}
	return products, nil
}

// GetProduct fetches one product by its public product id.
func (p *CatalogProcessor) GetProduct(ctx context.Context, productID string) (Product, error) {
	productID = strings.TrimSpace(productID)
	ctx = observability.WithFields(ctx, observability.Field{Key: "product_id", Value: productID})

	if productID == "" {
		return Product{}, ErrProductIDRequired
	}

	remote, err := p.platform.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, platform.ErrNotFound) {
			return Product{}, ErrProductNotFound
		}
		p.logger.Error(ctx, "failed to get product", err)
		return Product{}, err
	}
	return FromRemote(remote), nil
}

// CreateProductRequest represents an admin product submission
type CreateProductRequest struct {
	Name           string
	Category       string
	Type           string
	Description    string
	Features       []string
	Specifications []platform.Specification
	Images         []string
	Price          float64
	ActualPrice    float64
	Points         int
}

// CreateProduct validates and forwards a new product to the platform.
// Blank features and half-filled specification rows are dropped.
func (p *CatalogProcessor) CreateProduct(ctx context.Context, req CreateProductRequest) (Product, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "product_name", Value: req.Name})

	req.Name = strings.TrimSpace(req.Name)
	req.Category = strings.TrimSpace(req.Category)
	req.Type = strings.TrimSpace(req.Type)
	if req.Name == "" || req.Category == "" || req.Type == "" {
		return Product{}, ErrInvalidProduct
	}
	if req.Price < 0 || req.ActualPrice < 0 || req.Points < 0 {
		return Product{}, ErrInvalidProduct
	}

	created, err := p.platform.CreateProduct(ctx, platform.CreateProductRequest{
		Name:           req.Name,
		Category:       req.Category,
		Type:           req.Type,
		Description:    strings.TrimSpace(req.Description),
		Features:       cleanFeatures(req.Features),
		Specifications: cleanSpecifications(req.Specifications),
		Images:         cleanFeatures(req.Images),
		Price:          req.Price,
		ActualPrice:    req.ActualPrice,
		Points:         req.Points,
	})
	if err != nil {
		p.logger.Error(ctx, "failed to create product", err)
		return Product{}, err
	}

	product := FromRemote(created)
	p.logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "product_id", Value: product.ID},
	), "product created")
	return product, nil
}

// FromRemote flattens the platform's basic/details split.
func FromRemote(r platform.ProductOut) Product {
	profit, margin := ProfitAndMargin(r.Details.Price, r.Details.ActualPrice)
	product := Product{
		ID:             r.Basic.ProductID,
		Name:           r.Basic.Name,
		Category:       r.Basic.Category,
		Type:           r.Basic.Type,
		Description:    r.Details.Description,
		Price:          r.Details.Price,
		ActualPrice:    r.Details.ActualPrice,
		Profit:         profit,
		Margin:         margin,
		Points:         r.Details.Points,
		Images:         r.Details.Images,
		Features:       r.Details.Features,
		Specifications: r.Details.Specifications,
	}
	if product.Images == nil {
		product.Images = []string{}
	}
	if len(product.Images) > 0 {
		product.Image = product.Images[0]
	}
	return product
}

// ProfitAndMargin returns price minus cost and that profit as a percentage
// of cost, rounded to two decimals. Margin is zero for a zero cost.
func ProfitAndMargin(price, actualPrice float64) (float64, float64) {
	profit := price - actualPrice
	if actualPrice <= 0 {
		return round2(profit), 0
	}
	return round2(profit), round2(profit / actualPrice * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func cleanFeatures(items []string) []string {
	out := make([]string, 0, len(items))
	for _, f := range items {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func cleanSpecifications(specs []platform.Specification) []platform.Specification {
	out := make([]platform.Specification, 0, len(specs))
	for _, s := range specs {
		s.Label = strings.TrimSpace(s.Label)
		s.Value = strings.TrimSpace(s.Value)
		if s.Label != "" && s.Value != "" {
			out = append(out, s)
		}
	}
	return out
}
