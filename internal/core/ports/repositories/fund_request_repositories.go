package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/retailnet/retail_network_app/internal/core/domain"
)

// FundRequestReader defines read operations for fund requests
type FundRequestReader interface {
	// FindFundRequestByID retrieves a fund request.
	FindFundRequestByID(ctx context.Context, requestID string) (*domain.FundRequest, error)

	// ListAsRequester retrieves a paginated list of requests a scope raised.
	ListAsRequester(ctx context.Context, scopeID string, limit int, nextToken *string) ([]domain.FundRequest, *string, error)

	// ListAsFunder retrieves a paginated list of requests a scope funds.
	ListAsFunder(ctx context.Context, scopeID string, limit int, nextToken *string) ([]domain.FundRequest, *string, error)
}

// FundRequestWriter defines write operations for fund requests
type FundRequestWriter interface {
	// SaveFundRequest persists a new PENDING request.
	SaveFundRequest(ctx context.Context, request domain.FundRequest) error

	// MarkProcessed stamps a PENDING request APPROVED or REJECTED. The update
	// is conditional on status PENDING; zero rows affected means the request
	// was already processed (ErrInvalidState) or is absent (ErrNotFound).
	MarkProcessed(ctx context.Context, requestID string, status domain.FundRequestStatus, rejectionReason *string, processedAt time.Time, userID string) error
}

// FundRequestTransactionSupport defines the tx-scoped operations approval
// composes with the wallet engine.
type FundRequestTransactionSupport interface {
	// FindFundRequestForUpdateInTx retrieves a request and locks its row.
	FindFundRequestForUpdateInTx(ctx context.Context, tx pgx.Tx, requestID string) (*domain.FundRequest, error)

	// MarkProcessedInTx stamps a request within a transaction.
	MarkProcessedInTx(ctx context.Context, tx pgx.Tx, requestID string, status domain.FundRequestStatus, rejectionReason *string, processedAt time.Time, userID string) error
}

// FundRequestRepositoryFacade combines all fund-request repository interfaces
type FundRequestRepositoryFacade interface {
	FundRequestReader
	FundRequestWriter
	FundRequestTransactionSupport
}

// FundRequestRepositoryWithTx extends the facade with transaction capabilities
type FundRequestRepositoryWithTx interface {
	FundRequestRepositoryFacade
	TransactionManager
}
