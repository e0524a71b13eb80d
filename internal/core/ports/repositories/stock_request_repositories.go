package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/retailnet/retail_network_app/internal/core/domain"
)

// StockRequestReader defines read operations for stock requests
type StockRequestReader interface {
	// FindStockRequestByID retrieves a request with its items.
	FindStockRequestByID(ctx context.Context, requestID string) (*domain.StockRequest, error)

	// ListAsRequester retrieves a paginated list of requests a scope raised.
	ListAsRequester(ctx context.Context, scopeID string, limit int, nextToken *string) ([]domain.StockRequest, *string, error)

	// ListAsSupplier retrieves a paginated list of requests a scope supplies.
	ListAsSupplier(ctx context.Context, scopeID string, limit int, nextToken *string) ([]domain.StockRequest, *string, error)
}

// StockRequestWriter defines state-transition writes for stock requests
type StockRequestWriter interface {
	// SaveStockRequest persists a new request and its items atomically.
	SaveStockRequest(ctx context.Context, request domain.StockRequest) error

	// TransitionStatus moves a request from one status to another. The update
	// is conditional on the expected current status; zero rows affected means
	// the request moved concurrently and yields ErrInvalidState, or is absent
	// and yields ErrNotFound.
	TransitionStatus(ctx context.Context, requestID string, from, to domain.StockRequestStatus, rejectionReason *string, stampedAt time.Time, userID string) error
}

// StockRequestTransactionSupport defines the tx-scoped operations fulfillment
// composes with the wallet and inventory engines.
type StockRequestTransactionSupport interface {
	// FindStockRequestForUpdateInTx retrieves a request with its items and
	// locks the request row for update.
	FindStockRequestForUpdateInTx(ctx context.Context, tx pgx.Tx, requestID string) (*domain.StockRequest, error)

	// MarkFulfilledInTx stamps a request FULFILLED within a transaction.
	MarkFulfilledInTx(ctx context.Context, tx pgx.Tx, requestID string, fulfilledAt time.Time, userID string) error
}

// StockRequestRepositoryFacade combines all stock-request repository interfaces
type StockRequestRepositoryFacade interface {
	StockRequestReader
	StockRequestWriter
	StockRequestTransactionSupport
}

// StockRequestRepositoryWithTx extends the facade with transaction capabilities
type StockRequestRepositoryWithTx interface {
	StockRequestRepositoryFacade
	TransactionManager
}
