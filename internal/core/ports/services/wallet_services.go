package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/retailnet/retail_network_app/internal/core/domain"
	"github.com/retailnet/retail_network_app/internal/dto"
	"github.com/shopspring/decimal"
)

// TransferParams carries one money movement between at most two wallets.
// A nil FromWalletID models external money entering the system.
type TransferParams struct {
	FromWalletID *string
	ToWalletID   string
	Amount       decimal.Decimal
	RefType      domain.LedgerRefType
	RefID        string
	Notes        string
	Charges      domain.LedgerCharges
	ActorUserID  string
}

// WalletReaderSvc defines read operations for wallets and their ledger
type WalletReaderSvc interface {
	// GetWalletByID retrieves a specific wallet. The caller's scope must be
	// self-or-ancestor of the wallet's scope.
	GetWalletByID(ctx context.Context, caller domain.CallerContext, walletID string) (*domain.Wallet, error)

	// ListWalletsByScope retrieves every wallet a scope holds, after the
	// caller's scope has been authorized for that scope.
	ListWalletsByScope(ctx context.Context, caller domain.CallerContext, scopeID string) ([]domain.Wallet, error)

	// ListLedgerEntries retrieves a paginated ledger listing for one wallet.
	// The caller's scope must be self-or-ancestor of the wallet's scope.
	ListLedgerEntries(ctx context.Context, caller domain.CallerContext, walletID string, params dto.ListParams) ([]domain.LedgerEntry, *string, error)
}

// WalletEngineSvc is the single mutation surface for money. All balance
// changes funnel through Transfer or TransferInTx.
type WalletEngineSvc interface {
	// EnsureWallets idempotently creates the typed wallets for a scope.
	EnsureWallets(ctx context.Context, scopeID string, userID string) error

	// GetOrCreateWallet returns the wallet of one type for a scope, creating
	// the scope's wallets first if absent.
	GetOrCreateWallet(ctx context.Context, scopeID string, walletType domain.WalletType, userID string) (*domain.Wallet, error)

	// Transfer executes one money movement as its own atomic unit.
	Transfer(ctx context.Context, p TransferParams) (*domain.LedgerEntry, error)

	// TransferInTx executes one money movement inside a caller-owned
	// transaction, for workflows that combine money and stock legs.
	TransferInTx(ctx context.Context, tx pgx.Tx, p TransferParams) (*domain.LedgerEntry, error)
}

// WalletSvcFacade combines all wallet-related service interfaces
type WalletSvcFacade interface {
	WalletReaderSvc
	WalletEngineSvc
}
