package dto

import (
	"time"

	"github.com/retailnet/retail_network_app/internal/core/domain"
)

// StockRequestItemRequest is one line of a stock request.
type StockRequestItemRequest struct {
	ProductID string `json:"productID" binding:"required"`
	Qty       int64  `json:"qty" binding:"required,gt=0"`
}

// CreateStockRequestRequest defines the data needed to open a stock request.
// The requesting scope is taken from the authenticated caller.
type CreateStockRequestRequest struct {
	ToScopeID string                    `json:"toScopeID" binding:"required"`
	Items     []StockRequestItemRequest `json:"items" binding:"required,min=1,dive"`
}

// RejectRequest carries the reason for rejecting a request.
type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// StockRequestItemResponse is one line of a stock request response.
type StockRequestItemResponse struct {
	ItemID    string `json:"itemID"`
	ProductID string `json:"productID"`
	Qty       int64  `json:"qty"`
}

// StockRequestResponse defines the data returned for a stock request.
type StockRequestResponse struct {
	RequestID       string                     `json:"requestID"`
	FromScopeID     string                     `json:"fromScopeID"`
	ToScopeID       string                     `json:"toScopeID"`
	Status          string                     `json:"status"`
	Items           []StockRequestItemResponse `json:"items"`
	RejectionReason string                     `json:"rejectionReason,omitempty"`
	RequestedAt     time.Time                  `json:"requestedAt"`
	ApprovedAt      *time.Time                 `json:"approvedAt,omitempty"`
	FulfilledAt     *time.Time                 `json:"fulfilledAt,omitempty"`
}

// ToStockRequestResponse converts a domain.StockRequest to its DTO
func ToStockRequestResponse(r *domain.StockRequest) StockRequestResponse {
	items := make([]StockRequestItemResponse, len(r.Items))
	for i, it := range r.Items {
		items[i] = StockRequestItemResponse{
			ItemID:    it.ItemID,
			ProductID: it.ProductID,
			Qty:       it.Qty,
		}
	}
	return StockRequestResponse{
		RequestID:       r.RequestID,
		FromScopeID:     r.FromScopeID,
		ToScopeID:       r.ToScopeID,
		Status:          string(r.Status),
		Items:           items,
		RejectionReason: r.RejectionReason,
		RequestedAt:     r.RequestedAt,
		ApprovedAt:      r.ApprovedAt,
		FulfilledAt:     r.FulfilledAt,
	}
}

// ToStockRequestResponses converts a slice of domain.StockRequest to DTOs
func ToStockRequestResponses(requests []domain.StockRequest) []StockRequestResponse {
	res := make([]StockRequestResponse, len(requests))
	for i := range requests {
		res[i] = ToStockRequestResponse(&requests[i])
	}
	return res
}

// ListStockRequestsResponse is a paginated page of stock requests.
type ListStockRequestsResponse struct {
	Requests  []StockRequestResponse `json:"requests"`
	NextToken *string                `json:"nextToken,omitempty"`
}
