package domain

import "time"

// InventoryTxnType classifies a stock movement.
type InventoryTxnType string

const (
	TxnSale       InventoryTxnType = "SALE"
	TxnAdjustment InventoryTxnType = "ADJUSTMENT"
	TxnTransfer   InventoryTxnType = "TRANSFER"
)

// StockBalance is the on-hand quantity of one product at one scope. Rows are
// created lazily on first movement; a missing row reads as zero. Quantity may
// go negative only when a movement explicitly allows it.
type StockBalance struct {
	ScopeID   string `json:"scopeID"`
	ProductID string `json:"productID"`
	QtyOnHand int64  `json:"qtyOnHand"`
	AuditFields
}

// InventoryLedgerEntry is an immutable record of one quantity change to one
// stock balance, written in the same atomic unit as the balance mutation.
type InventoryLedgerEntry struct {
	EntryID   string           `json:"entryID"` // Primary Key (UUID)
	ScopeID   string           `json:"scopeID"`
	ProductID string           `json:"productID"`
	QtyChange int64            `json:"qtyChange"` // Signed
	TxnType   InventoryTxnType `json:"txnType"`
	RefType   string           `json:"refType"`
	RefID     string           `json:"refID"`
	CreatedAt time.Time        `json:"createdAt"`
	CreatedBy string           `json:"createdBy"`
}
