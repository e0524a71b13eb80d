package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/retailnet/retail_network_app/internal/core/domain"
	"github.com/retailnet/retail_network_app/internal/dto"
)

// MoveParams carries one signed stock movement for a (scope, product) pair.
type MoveParams struct {
	ScopeID       string
	ProductID     string
	QtyChange     int64
	TxnType       domain.InventoryTxnType
	RefType       string
	RefID         string
	AllowNegative bool
	ActorUserID   string
}

// InventoryReaderSvc defines read operations for stock data
type InventoryReaderSvc interface {
	// GetBalance retrieves the stock balance for a pair; a missing row is
	// returned as a zero-quantity balance, not an error. The caller's scope
	// must be self-or-ancestor of the target scope.
	GetBalance(ctx context.Context, caller domain.CallerContext, scopeID string, productID string) (*domain.StockBalance, error)

	// ListBalancesByScope retrieves every balance row a scope holds, after
	// the caller's scope has been authorized for that scope.
	ListBalancesByScope(ctx context.Context, caller domain.CallerContext, scopeID string) ([]domain.StockBalance, error)

	// ListEntries retrieves a paginated inventory ledger listing for a pair.
	ListEntries(ctx context.Context, caller domain.CallerContext, scopeID string, productID string, params dto.ListParams) ([]domain.InventoryLedgerEntry, *string, error)
}

// InventoryEngineSvc is the single mutation surface for stock. All quantity
// changes funnel through Move or MoveInTx.
type InventoryEngineSvc interface {
	// Move applies one signed quantity change as its own atomic unit.
	Move(ctx context.Context, p MoveParams) error

	// MoveInTx applies one signed quantity change inside a caller-owned
	// transaction, for workflows that combine stock and money legs.
	MoveInTx(ctx context.Context, tx pgx.Tx, p MoveParams) error
}

// InventorySvcFacade combines all inventory-related service interfaces
type InventorySvcFacade interface {
	InventoryReaderSvc
	InventoryEngineSvc
}
