package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WalletType identifies the purpose of a wallet within a scope.
type WalletType string

const (
	WalletFund           WalletType = "FUND"
	WalletIncome         WalletType = "INCOME"
	WalletSalesIncentive WalletType = "SALES_INCENTIVE"
)

// Wallet is one money account belonging to a scope.
// (scope_id, wallet_type) is unique so lazy creation stays idempotent.
type Wallet struct {
	WalletID string          `db:"wallet_id"`
	ScopeID  string          `db:"scope_id"`
	Type     WalletType      `db:"wallet_type"`
	Balance  decimal.Decimal `db:"balance"`
	AuditFields
}

// LedgerRefType identifies what business event a ledger entry belongs to.
type LedgerRefType string

// LedgerEntry is one immutable row of the money ledger. From or To may be
// nil for external legs (seeding, sales proceeds).
type LedgerEntry struct {
	EntryID      string          `db:"entry_id"`
	FromWalletID *string         `db:"from_wallet_id"`
	ToWalletID   *string         `db:"to_wallet_id"`
	Amount       decimal.Decimal `db:"amount"`
	RefType      LedgerRefType   `db:"ref_type"`
	RefID        string          `db:"ref_id"`
	Notes        string          `db:"notes"`
	AdminCharge  decimal.Decimal `db:"admin_charge"`
	Tax          decimal.Decimal `db:"tax"`
	Commission   decimal.Decimal `db:"commission"`
	CreatedAt    time.Time       `db:"created_at"`
	CreatedBy    string          `db:"created_by"`
}
