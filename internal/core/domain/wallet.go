package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WalletType distinguishes the three typed monetary accounts held by a scope.
type WalletType string

const (
	WalletFund           WalletType = "FUND"
	WalletIncome         WalletType = "INCOME"
	WalletSalesIncentive WalletType = "SALES_INCENTIVE"
)

// AllWalletTypes lists every wallet a scope is expected to hold.
var AllWalletTypes = []WalletType{WalletFund, WalletIncome, WalletSalesIncentive}

// Wallet is a typed monetary account owned by exactly one scope. There is at
// most one wallet per (scope, type) pair; wallets are created lazily with a
// zero balance on first access. Balances are mutated only through transfers.
type Wallet struct {
	WalletID string          `json:"walletID"` // Primary Key (UUID)
	ScopeID  string          `json:"scopeID"`
	Type     WalletType      `json:"type"`
	Balance  decimal.Decimal `json:"balance"` // Never negative
	AuditFields
}

// LedgerRefType names the business event a ledger entry explains.
type LedgerRefType string

const (
	RefStockRequest LedgerRefType = "STOCK_REQUEST"
	RefFundRequest  LedgerRefType = "FUND_REQUEST"
	RefSeed         LedgerRefType = "SEED"
	RefSale         LedgerRefType = "SALE"
)

// LedgerCharges is the informational breakdown carried on a ledger entry.
// The components are not booked separately.
type LedgerCharges struct {
	AdminCharge decimal.Decimal `json:"adminCharge"`
	Tax         decimal.Decimal `json:"tax"`
	Commission  decimal.Decimal `json:"commission"`
}

// LedgerEntry is an immutable record of a single money movement between at
// most two wallets. A nil FromWalletID models external money entering the
// system; at least one of the two wallet references must be present.
type LedgerEntry struct {
	EntryID      string          `json:"entryID"` // Primary Key (UUID)
	FromWalletID *string         `json:"fromWalletID"`
	ToWalletID   *string         `json:"toWalletID"`
	Amount       decimal.Decimal `json:"amount"` // Always > 0
	RefType      LedgerRefType   `json:"refType"`
	RefID        string          `json:"refID"`
	Notes        string          `json:"notes"`
	Charges      LedgerCharges   `json:"charges"`
	CreatedAt    time.Time       `json:"createdAt"`
	CreatedBy    string          `json:"createdBy"`
}
