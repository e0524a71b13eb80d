package repositories

import (
	"context"
	"time"

	"github.com/retailnet/retail_network_app/internal/core/domain"
)

// ScopeReader defines read operations for scope graph data
type ScopeReader interface {
	// FindScopeByID retrieves a specific scope node by its unique identifier.
	FindScopeByID(ctx context.Context, scopeID string) (*domain.ScopeNode, error)

	// FindScopesByIDs retrieves multiple scope nodes by their IDs.
	FindScopesByIDs(ctx context.Context, scopeIDs []string) (map[string]domain.ScopeNode, error)

	// FindAncestorIDs returns the IDs on the path from scopeID up to its root,
	// starting with scopeID itself.
	FindAncestorIDs(ctx context.Context, scopeID string) ([]string, error)

	// FindCompanyRoot retrieves the COMPANY-level root node for a company.
	FindCompanyRoot(ctx context.Context, companyID string) (*domain.ScopeNode, error)

	// ListChildren retrieves the direct children of a scope.
	ListChildren(ctx context.Context, scopeID string) ([]domain.ScopeNode, error)

	// CountActiveChildren reports how many direct active children a scope has.
	CountActiveChildren(ctx context.Context, scopeID string) (int, error)
}

// ScopeWriter defines write operations for scope graph data
type ScopeWriter interface {
	// SaveScope persists a new scope node.
	SaveScope(ctx context.Context, scope domain.ScopeNode) error

	// DeactivateScope marks a scope as inactive.
	DeactivateScope(ctx context.Context, scopeID string, userID string, now time.Time) error
}

// ScopeRepositoryFacade combines all scope-related repository interfaces
type ScopeRepositoryFacade interface {
	ScopeReader
	ScopeWriter
}
