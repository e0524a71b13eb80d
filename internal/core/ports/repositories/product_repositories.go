package repositories

import (
	"context"

	"github.com/retailnet/retail_network_app/internal/core/domain"
)

// ProductReader defines read operations for the product catalog
type ProductReader interface {
	// FindProductByID retrieves a specific product by its unique identifier.
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// FindProductsByIDs retrieves multiple products by their IDs.
	FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error)

	// ListProducts retrieves a paginated list of active products for a company.
	ListProducts(ctx context.Context, companyID string, limit int, offset int) ([]domain.Product, error)

	// FindScopePrice retrieves the price override for one (scope, product)
	// pair. Returns ErrNotFound when no override exists.
	FindScopePrice(ctx context.Context, scopeID string, productID string) (*domain.ScopePrice, error)
}

// ProductWriter defines write operations for the product catalog
type ProductWriter interface {
	// SaveProduct persists a new product.
	SaveProduct(ctx context.Context, product domain.Product) error

	// UpsertScopePrice creates or replaces a per-scope price override.
	UpsertScopePrice(ctx context.Context, price domain.ScopePrice) error

	// DeleteScopePrice removes a per-scope price override.
	DeleteScopePrice(ctx context.Context, scopeID string, productID string) error
}

// ProductRepositoryFacade combines all product-related repository interfaces
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
}
