package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/retailnet/retail_network_app/internal/apperrors"
	"github.com/retailnet/retail_network_app/internal/core/domain"
	portsrepo "github.com/retailnet/retail_network_app/internal/core/ports/repositories"
	"github.com/retailnet/retail_network_app/internal/models"
	"github.com/retailnet/retail_network_app/internal/utils/mapping"
)

type PgxProductRepository struct {
	pool *pgxpool.Pool
}

// newPgxProductRepository creates a new repository for catalog data.
func newPgxProductRepository(pool *pgxpool.Pool) portsrepo.ProductRepositoryFacade {
	return &PgxProductRepository{pool: pool}
}

// Ensure PgxProductRepository implements portsrepo.ProductRepositoryFacade
var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

const productColumns = `product_id, company_id, name, sku, default_sale_price, gst_percent, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanProductRow(row pgx.Row) (models.Product, error) {
	var m models.Product
	err := row.Scan(
		&m.ProductID,
		&m.CompanyID,
		&m.Name,
		&m.SKU,
		&m.DefaultSalePrice,
		&m.GSTPercent,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveProduct inserts a new product.
func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	m := mapping.ToModelProduct(product)

	query := `
		INSERT INTO products (product_id, company_id, name, sku, default_sale_price, gst_percent, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.pool.Exec(ctx, query,
		m.ProductID,
		m.CompanyID,
		m.Name,
		m.SKU,
		m.DefaultSalePrice,
		m.GSTPercent,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(mapPgError(err), apperrors.ErrDuplicate) {
			return fmt.Errorf("%w: product with SKU %s already exists for this company", apperrors.ErrDuplicate, m.SKU)
		}
		return fmt.Errorf("failed to save product %s: %w", m.ProductID, err)
	}
	return nil
}

// FindProductByID retrieves a product by its ID.
func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1;`

	m, err := scanProductRow(r.pool.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID %s: %w", productID, err)
	}

	d := mapping.ToDomainProduct(m)
	return &d, nil
}

// FindProductsByIDs retrieves multiple products by their IDs. IDs that do not
// exist are simply absent from the result map.
func (r *PgxProductRepository) FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error) {
	if len(productIDs) == 0 {
		return map[string]domain.Product{}, nil
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = ANY($1);`

	rows, err := r.pool.Query(ctx, query, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query products by IDs: %w", err)
	}
	defer rows.Close()

	productsMap := make(map[string]domain.Product)
	for rows.Next() {
		m, err := scanProductRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row during batch fetch: %w", err)
		}
		productsMap[m.ProductID] = mapping.ToDomainProduct(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows during batch fetch: %w", err)
	}

	return productsMap, nil
}

// ListProducts retrieves a paginated list of active products for a company.
func (r *PgxProductRepository) ListProducts(ctx context.Context, companyID string, limit int, offset int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE is_active = TRUE AND company_id = $1
		ORDER BY name
		LIMIT $2 OFFSET $3;
	`

	rows, err := r.pool.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query products for company %s: %w", companyID, err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		m, err := scanProductRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row for company %s: %w", companyID, err)
		}
		products = append(products, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows for company %s: %w", companyID, err)
	}

	return mapping.ToDomainProductSlice(products), nil
}

// FindScopePrice retrieves the price override for one (scope, product) pair.
func (r *PgxProductRepository) FindScopePrice(ctx context.Context, scopeID string, productID string) (*domain.ScopePrice, error) {
	query := `
		SELECT scope_id, product_id, unit_price, created_at, created_by, last_updated_at, last_updated_by
		FROM scope_prices
		WHERE scope_id = $1 AND product_id = $2;
	`

	var m models.ScopePrice
	err := r.pool.QueryRow(ctx, query, scopeID, productID).Scan(
		&m.ScopeID,
		&m.ProductID,
		&m.UnitPrice,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find scope price for scope %s product %s: %w", scopeID, productID, err)
	}

	d := mapping.ToDomainScopePrice(m)
	return &d, nil
}

// UpsertScopePrice creates or replaces a per-scope price override.
func (r *PgxProductRepository) UpsertScopePrice(ctx context.Context, price domain.ScopePrice) error {
	m := mapping.ToModelScopePrice(price)

	query := `
		INSERT INTO scope_prices (scope_id, product_id, unit_price, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (scope_id, product_id) DO UPDATE
		SET unit_price = EXCLUDED.unit_price,
		    last_updated_at = EXCLUDED.last_updated_at,
		    last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.pool.Exec(ctx, query,
		m.ScopeID,
		m.ProductID,
		m.UnitPrice,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert scope price for scope %s product %s: %w", m.ScopeID, m.ProductID, err)
	}
	return nil
}

// DeleteScopePrice removes a per-scope price override.
func (r *PgxProductRepository) DeleteScopePrice(ctx context.Context, scopeID string, productID string) error {
	query := `DELETE FROM scope_prices WHERE scope_id = $1 AND product_id = $2;`

	cmdTag, err := r.pool.Exec(ctx, query, scopeID, productID)
	if err != nil {
		return fmt.Errorf("failed to delete scope price for scope %s product %s: %w", scopeID, productID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
