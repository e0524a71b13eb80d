package services

import (
	"context"

	"github.com/retailnet/retail_network_app/internal/core/domain"
	"github.com/retailnet/retail_network_app/internal/dto"
	"github.com/shopspring/decimal"
)

// PricingSvc resolves the unit price to charge for a (scope, product) pair.
type PricingSvc interface {
	// EffectiveUnitPrice returns the scope-specific override if present, else
	// the product's default sale price, else zero (logged as anomalous).
	EffectiveUnitPrice(ctx context.Context, scopeID string, productID string) (decimal.Decimal, error)
}

// ProductSvcFacade defines the product catalog operations consumed by the
// pricing resolver and stock-request line items.
type ProductSvcFacade interface {
	// CreateProduct persists a new catalog product.
	CreateProduct(ctx context.Context, req dto.CreateProductRequest, caller domain.CallerContext) (*domain.Product, error)

	// GetProductByID retrieves a product.
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// GetProductsByIDs retrieves multiple products by their IDs.
	GetProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error)

	// ListProducts retrieves a paginated product listing for a company.
	ListProducts(ctx context.Context, companyID string, limit int, offset int) ([]domain.Product, error)

	// SetScopePrice creates or replaces a per-scope price override.
	SetScopePrice(ctx context.Context, scopeID string, productID string, req dto.SetScopePriceRequest, caller domain.CallerContext) error

	// RemoveScopePrice removes a per-scope price override.
	RemoveScopePrice(ctx context.Context, scopeID string, productID string, caller domain.CallerContext) error
}
