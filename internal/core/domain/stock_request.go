package domain

import "time"

// StockRequestStatus is the state of a stock request workflow.
type StockRequestStatus string

const (
	StockDraft     StockRequestStatus = "DRAFT"
	StockSubmitted StockRequestStatus = "SUBMITTED"
	StockApproved  StockRequestStatus = "APPROVED"
	StockRejected  StockRequestStatus = "REJECTED"
	StockFulfilled StockRequestStatus = "FULFILLED"
)

// StockRequestItem is one requested product line. Items are fixed at creation.
type StockRequestItem struct {
	ItemID    string `json:"itemID"` // Primary Key (UUID)
	RequestID string `json:"requestID"`
	ProductID string `json:"productID"`
	Qty       int64  `json:"qty"` // Always > 0
}

// StockRequest moves goods from a supplier scope to a requester scope, gated
// by approval. Lifecycle: DRAFT → SUBMITTED → APPROVED → FULFILLED, with
// SUBMITTED → REJECTED the only rejection point. Once fulfilled it is
// immutable history.
type StockRequest struct {
	RequestID       string             `json:"requestID"` // Primary Key (UUID)
	FromScopeID     string             `json:"fromScopeID"` // Requester
	ToScopeID       string             `json:"toScopeID"`   // Supplier
	Status          StockRequestStatus `json:"status"`
	Items           []StockRequestItem `json:"items,omitempty"`
	RejectionReason string             `json:"rejectionReason,omitempty"`
	RequestedAt     time.Time          `json:"requestedAt"`
	ApprovedAt      *time.Time         `json:"approvedAt,omitempty"`
	FulfilledAt     *time.Time         `json:"fulfilledAt,omitempty"`
	AuditFields
}
