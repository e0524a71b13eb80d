package mapping

import (
	"github.com/retailnet/retail_network_app/internal/core/domain"
	"github.com/retailnet/retail_network_app/internal/models"
)

// ToModelScopeNode converts a domain ScopeNode to a model ScopeNode
func ToModelScopeNode(d domain.ScopeNode) models.ScopeNode {
	return models.ScopeNode{
		ScopeID:     d.ScopeID,
		CompanyID:   d.CompanyID,
		Name:        d.Name,
		Level:       models.ScopeLevel(d.Level),
		ParentID:    d.ParentID,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainScopeNode converts a model ScopeNode to a domain ScopeNode
func ToDomainScopeNode(m models.ScopeNode) domain.ScopeNode {
	return domain.ScopeNode{
		ScopeID:     m.ScopeID,
		CompanyID:   m.CompanyID,
		Name:        m.Name,
		Level:       domain.ScopeLevel(m.Level),
		ParentID:    m.ParentID,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainScopeNodeSlice converts a slice of model ScopeNodes to domain ScopeNodes
func ToDomainScopeNodeSlice(ms []models.ScopeNode) []domain.ScopeNode {
	ds := make([]domain.ScopeNode, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainScopeNode(m)
	}
	return ds
}
