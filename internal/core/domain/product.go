package domain

import "github.com/shopspring/decimal"

// Product is a catalog item. DefaultSalePrice is the fallback unit price when
// a scope carries no override.
type Product struct {
	ProductID        string          `json:"productID"` // Primary Key (UUID)
	CompanyID        string          `json:"companyID"`
	Name             string          `json:"name"`
	SKU              string          `json:"sku"`
	DefaultSalePrice decimal.Decimal `json:"defaultSalePrice"`
	GSTPercent       decimal.Decimal `json:"gstPercent"`
	IsActive         bool            `json:"isActive"`
	AuditFields
}

// ScopePrice is a per-scope unit price override for one product. At most one
// row per (scope, product) pair.
type ScopePrice struct {
	ScopeID   string          `json:"scopeID"`
	ProductID string          `json:"productID"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	AuditFields
}
