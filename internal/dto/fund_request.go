package dto

import (
	"time"

	"github.com/retailnet/retail_network_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateFundRequestRequest defines the data needed to open a fund request.
// The requesting scope is taken from the authenticated caller.
type CreateFundRequestRequest struct {
	ToScopeID string          `json:"toScopeID" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Notes     string          `json:"notes"`
}

// FundRequestResponse defines the data returned for a fund request.
type FundRequestResponse struct {
	RequestID       string          `json:"requestID"`
	FromScopeID     string          `json:"fromScopeID"`
	ToScopeID       string          `json:"toScopeID"`
	Amount          decimal.Decimal `json:"amount"`
	Status          string          `json:"status"`
	Notes           string          `json:"notes,omitempty"`
	RejectionReason string          `json:"rejectionReason,omitempty"`
	RequestedAt     time.Time       `json:"requestedAt"`
	ProcessedAt     *time.Time      `json:"processedAt,omitempty"`
}

// ToFundRequestResponse converts a domain.FundRequest to its DTO
func ToFundRequestResponse(r *domain.FundRequest) FundRequestResponse {
	return FundRequestResponse{
		RequestID:       r.RequestID,
		FromScopeID:     r.FromScopeID,
		ToScopeID:       r.ToScopeID,
		Amount:          r.Amount,
		Status:          string(r.Status),
		Notes:           r.Notes,
		RejectionReason: r.RejectionReason,
		RequestedAt:     r.RequestedAt,
		ProcessedAt:     r.ProcessedAt,
	}
}

// ToFundRequestResponses converts a slice of domain.FundRequest to DTOs
func ToFundRequestResponses(requests []domain.FundRequest) []FundRequestResponse {
	res := make([]FundRequestResponse, len(requests))
	for i := range requests {
		res[i] = ToFundRequestResponse(&requests[i])
	}
	return res
}

// ListFundRequestsResponse is a paginated page of fund requests.
type ListFundRequestsResponse struct {
	Requests  []FundRequestResponse `json:"requests"`
	NextToken *string               `json:"nextToken,omitempty"`
}
