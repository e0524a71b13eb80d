package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FundRequestStatus is the lifecycle state of a fund request.
type FundRequestStatus string

// FundRequest is a request by a scope for funds from an ancestor scope.
type FundRequest struct {
	RequestID       string            `db:"request_id"`
	FromScopeID     string            `db:"from_scope_id"`
	ToScopeID       string            `db:"to_scope_id"`
	Amount          decimal.Decimal   `db:"amount"`
	Status          FundRequestStatus `db:"status"`
	Notes           string            `db:"notes"`
	RejectionReason string            `db:"rejection_reason"`
	RequestedAt     time.Time         `db:"requested_at"`
	ProcessedAt     *time.Time        `db:"processed_at"`
	AuditFields
}
