package dto

import (
	"time"

	"github.com/retailnet/retail_network_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// WalletResponse defines the data returned for a wallet.
type WalletResponse struct {
	WalletID string            `json:"walletID"`
	ScopeID  string            `json:"scopeID"`
	Type     domain.WalletType `json:"type"`
	Balance  decimal.Decimal   `json:"balance"`
}

// ToWalletResponse converts a domain.Wallet to WalletResponse DTO
func ToWalletResponse(w *domain.Wallet) WalletResponse {
	return WalletResponse{
		WalletID: w.WalletID,
		ScopeID:  w.ScopeID,
		Type:     w.Type,
		Balance:  w.Balance,
	}
}

// ToWalletResponses converts a slice of domain.Wallet to DTOs
func ToWalletResponses(wallets []domain.Wallet) []WalletResponse {
	res := make([]WalletResponse, len(wallets))
	for i := range wallets {
		res[i] = ToWalletResponse(&wallets[i])
	}
	return res
}

// LedgerEntryResponse defines the data returned for one ledger entry.
type LedgerEntryResponse struct {
	EntryID      string               `json:"entryID"`
	FromWalletID *string              `json:"fromWalletID"`
	ToWalletID   *string              `json:"toWalletID"`
	Amount       decimal.Decimal      `json:"amount"`
	RefType      domain.LedgerRefType `json:"refType"`
	RefID        string               `json:"refID"`
	Notes        string               `json:"notes"`
	AdminCharge  decimal.Decimal      `json:"adminCharge"`
	Tax          decimal.Decimal      `json:"tax"`
	Commission   decimal.Decimal      `json:"commission"`
	CreatedAt    time.Time            `json:"createdAt"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to LedgerEntryResponse DTO
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:      e.EntryID,
		FromWalletID: e.FromWalletID,
		ToWalletID:   e.ToWalletID,
		Amount:       e.Amount,
		RefType:      e.RefType,
		RefID:        e.RefID,
		Notes:        e.Notes,
		AdminCharge:  e.Charges.AdminCharge,
		Tax:          e.Charges.Tax,
		Commission:   e.Charges.Commission,
		CreatedAt:    e.CreatedAt,
	}
}

// ToLedgerEntryResponses converts domain ledger entries to DTOs
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	res := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		res[i] = ToLedgerEntryResponse(&entries[i])
	}
	return res
}

// ListLedgerEntriesResponse wraps a paginated ledger listing.
type ListLedgerEntriesResponse struct {
	Entries   []LedgerEntryResponse `json:"entries"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// SeedWalletRequest credits a wallet from outside the system (no debit leg).
type SeedWalletRequest struct {
	ScopeID    string            `json:"scopeID" binding:"required"`
	WalletType domain.WalletType `json:"walletType" binding:"required,oneof=FUND INCOME SALES_INCENTIVE"`
	Amount     decimal.Decimal   `json:"amount" binding:"required"`
	Notes      string            `json:"notes"`
}
