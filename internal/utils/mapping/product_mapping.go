package mapping

import (
	"github.com/retailnet/retail_network_app/internal/core/domain"
	"github.com/retailnet/retail_network_app/internal/models"
)

// ToModelProduct converts a domain Product to a model Product
func ToModelProduct(d domain.Product) models.Product {
	return models.Product{
		ProductID:        d.ProductID,
		CompanyID:        d.CompanyID,
		Name:             d.Name,
		SKU:              d.SKU,
		DefaultSalePrice: d.DefaultSalePrice,
		GSTPercent:       d.GSTPercent,
		IsActive:         d.IsActive,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProduct converts a model Product to a domain Product
func ToDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID:        m.ProductID,
		CompanyID:        m.CompanyID,
		Name:             m.Name,
		SKU:              m.SKU,
		DefaultSalePrice: m.DefaultSalePrice,
		GSTPercent:       m.GSTPercent,
		IsActive:         m.IsActive,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainProductSlice converts a slice of model Products to domain Products
func ToDomainProductSlice(ms []models.Product) []domain.Product {
	ds := make([]domain.Product, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainProduct(m)
	}
	return ds
}

// ToModelScopePrice converts a domain ScopePrice to a model ScopePrice
func ToModelScopePrice(d domain.ScopePrice) models.ScopePrice {
	return models.ScopePrice{
		ScopeID:     d.ScopeID,
		ProductID:   d.ProductID,
		UnitPrice:   d.UnitPrice,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainScopePrice converts a model ScopePrice to a domain ScopePrice
func ToDomainScopePrice(m models.ScopePrice) domain.ScopePrice {
	return domain.ScopePrice{
		ScopeID:     m.ScopeID,
		ProductID:   m.ProductID,
		UnitPrice:   m.UnitPrice,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
