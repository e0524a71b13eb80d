package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/retailnet/retail_network_app/internal/core/domain"
)

// InventoryReader defines read operations for stock balances and their ledger
type InventoryReader interface {
	// FindStockBalance retrieves the balance row for one (scope, product)
	// pair. Returns ErrNotFound when no row exists (which reads as zero).
	FindStockBalance(ctx context.Context, scopeID string, productID string) (*domain.StockBalance, error)

	// ListStockBalancesByScope retrieves every balance row a scope holds.
	ListStockBalancesByScope(ctx context.Context, scopeID string) ([]domain.StockBalance, error)

	// ListInventoryEntries retrieves a paginated list of inventory ledger
	// entries for one (scope, product) pair, newest first.
	ListInventoryEntries(ctx context.Context, scopeID string, productID string, limit int, nextToken *string) ([]domain.InventoryLedgerEntry, *string, error)
}

// InventoryTransactionSupport defines the tx-scoped primitives every stock
// mutation funnels through.
type InventoryTransactionSupport interface {
	// FindStockBalanceForUpdateInTx selects the balance row for a pair and
	// locks it for update. Returns ErrNotFound when no row exists.
	FindStockBalanceForUpdateInTx(ctx context.Context, tx pgx.Tx, scopeID string, productID string) (*domain.StockBalance, error)

	// ApplyStockBalanceChangeInTx applies one signed quantity delta to a
	// balance row within a transaction, creating the row when absent, and
	// returns the resulting quantity. The delta is applied relative to the
	// stored quantity so concurrent first writes cannot overwrite each other.
	ApplyStockBalanceChangeInTx(ctx context.Context, tx pgx.Tx, scopeID string, productID string, qtyChange int64, userID string, now time.Time) (int64, error)

	// SaveInventoryEntryInTx appends one inventory ledger entry within a
	// transaction.
	SaveInventoryEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.InventoryLedgerEntry) error
}

// InventoryRepositoryFacade combines all inventory-related repository interfaces
type InventoryRepositoryFacade interface {
	InventoryReader
	InventoryTransactionSupport
}

// InventoryRepositoryWithTx extends InventoryRepositoryFacade with transaction capabilities
type InventoryRepositoryWithTx interface {
	InventoryRepositoryFacade
	TransactionManager
}
