package dto

import (
	"time"

	"github.com/retailnet/retail_network_app/internal/core/domain"
)

// StockBalanceResponse defines the data returned for one stock balance.
type StockBalanceResponse struct {
	ScopeID   string `json:"scopeID"`
	ProductID string `json:"productID"`
	QtyOnHand int64  `json:"qtyOnHand"`
}

// ToStockBalanceResponse converts a domain.StockBalance to its DTO
func ToStockBalanceResponse(b *domain.StockBalance) StockBalanceResponse {
	return StockBalanceResponse{
		ScopeID:   b.ScopeID,
		ProductID: b.ProductID,
		QtyOnHand: b.QtyOnHand,
	}
}

// ToStockBalanceResponses converts a slice of domain.StockBalance to DTOs
func ToStockBalanceResponses(balances []domain.StockBalance) []StockBalanceResponse {
	res := make([]StockBalanceResponse, len(balances))
	for i := range balances {
		res[i] = ToStockBalanceResponse(&balances[i])
	}
	return res
}

// InventoryEntryResponse defines the data returned for one inventory ledger entry.
type InventoryEntryResponse struct {
	EntryID   string                  `json:"entryID"`
	ScopeID   string                  `json:"scopeID"`
	ProductID string                  `json:"productID"`
	QtyChange int64                   `json:"qtyChange"`
	TxnType   domain.InventoryTxnType `json:"txnType"`
	RefType   string                  `json:"refType"`
	RefID     string                  `json:"refID"`
	CreatedAt time.Time               `json:"createdAt"`
}

// ToInventoryEntryResponses converts domain inventory entries to DTOs
func ToInventoryEntryResponses(entries []domain.InventoryLedgerEntry) []InventoryEntryResponse {
	res := make([]InventoryEntryResponse, len(entries))
	for i, e := range entries {
		res[i] = InventoryEntryResponse{
			EntryID:   e.EntryID,
			ScopeID:   e.ScopeID,
			ProductID: e.ProductID,
			QtyChange: e.QtyChange,
			TxnType:   e.TxnType,
			RefType:   e.RefType,
			RefID:     e.RefID,
			CreatedAt: e.CreatedAt,
		}
	}
	return res
}

// ListInventoryEntriesResponse wraps a paginated inventory ledger listing.
type ListInventoryEntriesResponse struct {
	Entries   []InventoryEntryResponse `json:"entries"`
	NextToken *string                  `json:"nextToken,omitempty"`
}

// AdjustStockRequest applies an administrative quantity adjustment.
type AdjustStockRequest struct {
	ScopeID   string `json:"scopeID" binding:"required"`
	ProductID string `json:"productID" binding:"required"`
	QtyChange int64  `json:"qtyChange" binding:"required"`
	Reason    string `json:"reason"`
}
