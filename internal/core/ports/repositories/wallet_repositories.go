package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/retailnet/retail_network_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// WalletReader defines read operations for wallet and ledger data
type WalletReader interface {
	// FindWalletByID retrieves a specific wallet by its unique identifier.
	FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error)

	// FindWalletByScopeAndType retrieves the wallet of one type for a scope.
	FindWalletByScopeAndType(ctx context.Context, scopeID string, walletType domain.WalletType) (*domain.Wallet, error)

	// ListWalletsByScope retrieves every wallet a scope holds.
	ListWalletsByScope(ctx context.Context, scopeID string) ([]domain.Wallet, error)

	// ListLedgerEntriesByWallet retrieves a paginated list of ledger entries
	// touching a wallet, newest first, using token-based pagination.
	ListLedgerEntriesByWallet(ctx context.Context, walletID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)
}

// WalletTransactionSupport defines the tx-scoped primitives every money
// mutation funnels through.
type WalletTransactionSupport interface {
	// EnsureWalletsInTx idempotently creates the typed wallets for a scope.
	// Safe to call repeatedly; concurrent first-access calls produce exactly
	// one row per (scope, type).
	EnsureWalletsInTx(ctx context.Context, tx pgx.Tx, scopeID string, userID string, now time.Time) error

	// FindWalletsByIDsForUpdate selects wallets and locks the rows for update
	// within a transaction.
	FindWalletsByIDsForUpdate(ctx context.Context, tx pgx.Tx, walletIDs []string) (map[string]domain.Wallet, error)

	// SaveLedgerEntryInTx appends one ledger entry within a transaction.
	SaveLedgerEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error

	// ApplyWalletBalanceChangesInTx applies signed balance deltas to multiple
	// wallets within a transaction. Rows must already be locked.
	ApplyWalletBalanceChangesInTx(ctx context.Context, tx pgx.Tx, changes map[string]decimal.Decimal, userID string, now time.Time) error
}

// WalletRepositoryFacade combines all wallet-related repository interfaces
type WalletRepositoryFacade interface {
	WalletReader
	WalletTransactionSupport
}

// WalletRepositoryWithTx extends WalletRepositoryFacade with transaction capabilities
type WalletRepositoryWithTx interface {
	WalletRepositoryFacade
	TransactionManager
}
