package services

import (
	"context"

	"github.com/retailnet/retail_network_app/internal/core/domain"
	"github.com/retailnet/retail_network_app/internal/dto"
)

// StockRequestSvcFacade drives the stock request state machine:
// DRAFT → SUBMITTED → APPROVED → FULFILLED, SUBMITTED → REJECTED.
type StockRequestSvcFacade interface {
	// Create validates the hierarchy pairing and persists a DRAFT request.
	Create(ctx context.Context, req dto.CreateStockRequestRequest, caller domain.CallerContext) (*domain.StockRequest, error)

	// Submit moves a DRAFT request to SUBMITTED.
	Submit(ctx context.Context, requestID string, caller domain.CallerContext) (*domain.StockRequest, error)

	// Approve moves a SUBMITTED request to APPROVED. Caller acts for the
	// supplier scope.
	Approve(ctx context.Context, requestID string, caller domain.CallerContext) (*domain.StockRequest, error)

	// Reject moves a SUBMITTED request to REJECTED. Caller acts for the
	// supplier scope.
	Reject(ctx context.Context, requestID string, reason string, caller domain.CallerContext) (*domain.StockRequest, error)

	// Fulfill executes the approved movement: both inventory legs per item
	// plus the payment leg, atomically, then stamps FULFILLED. On failure
	// nothing is applied and the request remains APPROVED.
	Fulfill(ctx context.Context, requestID string, caller domain.CallerContext) (*domain.StockRequest, error)

	// GetByID retrieves a request with its items; the caller's scope must be
	// self-or-ancestor of either side.
	GetByID(ctx context.Context, requestID string, caller domain.CallerContext) (*domain.StockRequest, error)

	// ListAsRequester lists requests raised by the given scope.
	ListAsRequester(ctx context.Context, scopeID string, params dto.ListParams, caller domain.CallerContext) ([]domain.StockRequest, *string, error)

	// ListAsSupplier lists requests addressed to the given scope.
	ListAsSupplier(ctx context.Context, scopeID string, params dto.ListParams, caller domain.CallerContext) ([]domain.StockRequest, *string, error)
}

// FundRequestSvcFacade drives the fund request state machine:
// PENDING → APPROVED or PENDING → REJECTED.
type FundRequestSvcFacade interface {
	// Create validates that the funder is a proper ancestor of the requester
	// and persists a PENDING request.
	Create(ctx context.Context, req dto.CreateFundRequestRequest, caller domain.CallerContext) (*domain.FundRequest, error)

	// Approve transfers funder Fund → requester Fund atomically with the
	// APPROVED stamp. On failure the request remains PENDING.
	Approve(ctx context.Context, requestID string, caller domain.CallerContext) (*domain.FundRequest, error)

	// Reject stamps a PENDING request REJECTED with a reason. No ledger effect.
	Reject(ctx context.Context, requestID string, reason string, caller domain.CallerContext) (*domain.FundRequest, error)

	// GetByID retrieves a request; the caller's scope must be
	// self-or-ancestor of either side.
	GetByID(ctx context.Context, requestID string, caller domain.CallerContext) (*domain.FundRequest, error)

	// ListAsRequester lists requests raised by the given scope.
	ListAsRequester(ctx context.Context, scopeID string, params dto.ListParams, caller domain.CallerContext) ([]domain.FundRequest, *string, error)

	// ListAsFunder lists requests addressed to the given scope.
	ListAsFunder(ctx context.Context, scopeID string, params dto.ListParams, caller domain.CallerContext) ([]domain.FundRequest, *string, error)
}
