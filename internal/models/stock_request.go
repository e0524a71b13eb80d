package models

import "time"

// StockRequestStatus is the lifecycle state of a stock request.
type StockRequestStatus string

// StockRequestItem is one requested product line.
type StockRequestItem struct {
	ItemID    string `db:"item_id"`
	RequestID string `db:"request_id"`
	ProductID string `db:"product_id"`
	Qty       int64  `db:"qty"`
}

// StockRequest is a request by a scope for stock from an ancestor scope.
type StockRequest struct {
	RequestID       string             `db:"request_id"`
	FromScopeID     string             `db:"from_scope_id"`
	ToScopeID       string             `db:"to_scope_id"`
	Status          StockRequestStatus `db:"status"`
	RejectionReason string             `db:"rejection_reason"`
	RequestedAt     time.Time          `db:"requested_at"`
	ApprovedAt      *time.Time         `db:"approved_at"`
	FulfilledAt     *time.Time         `db:"fulfilled_at"`
	AuditFields
}
