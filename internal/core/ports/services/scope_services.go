package services

import (
	"context"

	"github.com/retailnet/retail_network_app/internal/core/domain"
	"github.com/retailnet/retail_network_app/internal/dto"
)

// ScopeReaderSvc defines read operations over the scope graph
type ScopeReaderSvc interface {
	// GetScopeByID retrieves a specific scope node.
	GetScopeByID(ctx context.Context, scopeID string) (*domain.ScopeNode, error)

	// ListChildren retrieves the direct children of a scope.
	ListChildren(ctx context.Context, scopeID string) ([]domain.ScopeNode, error)

	// IsAncestorOrSelf reports whether candidateAncestorID is scopeID itself
	// or one of its ancestors.
	IsAncestorOrSelf(ctx context.Context, candidateAncestorID string, scopeID string) (bool, error)
}

// ScopeWriterSvc defines scope management operations
type ScopeWriterSvc interface {
	// CreateScope persists a new scope node after validating the level chain.
	CreateScope(ctx context.Context, req dto.CreateScopeRequest, caller domain.CallerContext) (*domain.ScopeNode, error)

	// DeactivateScope soft-deletes a scope; refused while active children exist.
	DeactivateScope(ctx context.Context, scopeID string, caller domain.CallerContext) error
}

// ScopeAuthorizerSvc gates actions on scopes by hierarchy position
type ScopeAuthorizerSvc interface {
	// AuthorizeScopeAction returns nil when the caller's scope is
	// targetScopeID itself or one of its ancestors, ErrForbidden otherwise.
	AuthorizeScopeAction(ctx context.Context, caller domain.CallerContext, targetScopeID string) error

	// ValidateRequestPair returns nil when fromScopeID may raise a stock
	// request against toScopeID, ErrInvalidHierarchy otherwise.
	ValidateRequestPair(ctx context.Context, fromScopeID string, toScopeID string) error
}

// ScopeSvcFacade combines all scope-related service interfaces
type ScopeSvcFacade interface {
	ScopeReaderSvc
	ScopeWriterSvc
	ScopeAuthorizerSvc
}
