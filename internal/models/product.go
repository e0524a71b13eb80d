package models

import "github.com/shopspring/decimal"

// Product is one catalog item owned by a company.
type Product struct {
	ProductID        string          `db:"product_id"`
	CompanyID        string          `db:"company_id"`
	Name             string          `db:"name"`
	SKU              string          `db:"sku"`
	DefaultSalePrice decimal.Decimal `db:"default_sale_price"`
	GSTPercent       decimal.Decimal `db:"gst_percent"`
	IsActive         bool            `db:"is_active"`
	AuditFields
}

// ScopePrice is a per-scope override of a product's unit price.
type ScopePrice struct {
	ScopeID   string          `db:"scope_id"`
	ProductID string          `db:"product_id"`
	UnitPrice decimal.Decimal `db:"unit_price"`
	AuditFields
}
