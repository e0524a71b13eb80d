package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FundRequestStatus is the state of a fund request workflow.
type FundRequestStatus string

const (
	FundPending  FundRequestStatus = "PENDING"
	FundApproved FundRequestStatus = "APPROVED"
	FundRejected FundRequestStatus = "REJECTED"
)

// FundRequest moves money from a funder (ancestor) scope to a requester
// scope, gated by approval. PENDING → APPROVED and PENDING → REJECTED are
// both terminal; a processed request is immutable.
type FundRequest struct {
	RequestID       string            `json:"requestID"` // Primary Key (UUID)
	FromScopeID     string            `json:"fromScopeID"` // Requester of funds
	ToScopeID       string            `json:"toScopeID"`   // Funder (ancestor)
	Amount          decimal.Decimal   `json:"amount"`      // Always > 0
	Status          FundRequestStatus `json:"status"`
	Notes           string            `json:"notes"`
	RejectionReason string            `json:"rejectionReason,omitempty"`
	RequestedAt     time.Time         `json:"requestedAt"`
	ProcessedAt     *time.Time        `json:"processedAt,omitempty"`
	AuditFields
}
