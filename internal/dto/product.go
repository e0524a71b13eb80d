package dto

import (
	"github.com/retailnet/retail_network_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProductRequest defines the data needed to create a catalog product.
type CreateProductRequest struct {
	CompanyID        string          `json:"companyID" binding:"required"`
	Name             string          `json:"name" binding:"required"`
	SKU              string          `json:"sku" binding:"required"`
	DefaultSalePrice decimal.Decimal `json:"defaultSalePrice" binding:"required"`
	GSTPercent       decimal.Decimal `json:"gstPercent"`
}

// SetScopePriceRequest sets a per-scope unit price override.
type SetScopePriceRequest struct {
	UnitPrice decimal.Decimal `json:"unitPrice" binding:"required"`
}

// ProductResponse defines the data returned for a product.
type ProductResponse struct {
	ProductID        string          `json:"productID"`
	CompanyID        string          `json:"companyID"`
	Name             string          `json:"name"`
	SKU              string          `json:"sku"`
	DefaultSalePrice decimal.Decimal `json:"defaultSalePrice"`
	GSTPercent       decimal.Decimal `json:"gstPercent"`
	IsActive         bool            `json:"isActive"`
}

// ToProductResponse converts a domain.Product to ProductResponse DTO
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID:        p.ProductID,
		CompanyID:        p.CompanyID,
		Name:             p.Name,
		SKU:              p.SKU,
		DefaultSalePrice: p.DefaultSalePrice,
		GSTPercent:       p.GSTPercent,
		IsActive:         p.IsActive,
	}
}

// ToProductResponses converts a slice of domain.Product to DTOs
func ToProductResponses(products []domain.Product) []ProductResponse {
	res := make([]ProductResponse, len(products))
	for i := range products {
		res[i] = ToProductResponse(&products[i])
	}
	return res
}

// ListProductsParams defines query parameters for listing products.
type ListProductsParams struct {
	CompanyID string `form:"companyID" binding:"required"`
	Limit     int    `form:"limit,default=20"`
	Offset    int    `form:"offset,default=0"`
}
