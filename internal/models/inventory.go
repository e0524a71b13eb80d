package models

import "time"

// StockBalance is the current quantity of one product held at one scope.
// (scope_id, product_id) is unique.
type StockBalance struct {
	ScopeID   string `db:"scope_id"`
	ProductID string `db:"product_id"`
	QtyOnHand int64  `db:"qty_on_hand"`
	AuditFields
}

// InventoryLedgerEntry is one immutable row of the inventory ledger.
type InventoryLedgerEntry struct {
	EntryID   string    `db:"entry_id"`
	ScopeID   string    `db:"scope_id"`
	ProductID string    `db:"product_id"`
	QtyChange int64     `db:"qty_change"`
	TxnType   string    `db:"txn_type"`
	RefType   string    `db:"ref_type"`
	RefID     string    `db:"ref_id"`
	CreatedAt time.Time `db:"created_at"`
	CreatedBy string    `db:"created_by"`
}
