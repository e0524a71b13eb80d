package dto

import (
	"time"

	"github.com/retailnet/retail_network_app/internal/core/domain"
)

// CreateScopeRequest defines the data needed to create a new scope node.
type CreateScopeRequest struct {
	CompanyID string            `json:"companyID" binding:"required"`
	Name      string            `json:"name" binding:"required"`
	Level     domain.ScopeLevel `json:"level" binding:"required,oneof=COMPANY STATE DISTRICT LOCAL"`
	ParentID  *string           `json:"parentID"` // nil only for the COMPANY root
}

// ScopeResponse defines the data returned for a scope node.
type ScopeResponse struct {
	ScopeID   string            `json:"scopeID"`
	CompanyID string            `json:"companyID"`
	Name      string            `json:"name"`
	Level     domain.ScopeLevel `json:"level"`
	ParentID  *string           `json:"parentID"`
	IsActive  bool              `json:"isActive"`
	CreatedAt time.Time         `json:"createdAt"`
}

// ToScopeResponse converts a domain.ScopeNode to ScopeResponse DTO
func ToScopeResponse(s *domain.ScopeNode) ScopeResponse {
	return ScopeResponse{
		ScopeID:   s.ScopeID,
		CompanyID: s.CompanyID,
		Name:      s.Name,
		Level:     s.Level,
		ParentID:  s.ParentID,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
	}
}

// ToScopeResponses converts a slice of domain.ScopeNode to DTOs
func ToScopeResponses(scopes []domain.ScopeNode) []ScopeResponse {
	res := make([]ScopeResponse, len(scopes))
	for i := range scopes {
		res[i] = ToScopeResponse(&scopes[i])
	}
	return res
}
