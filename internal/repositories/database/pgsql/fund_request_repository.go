package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/retailnet/retail_network_app/internal/apperrors"
	"github.com/retailnet/retail_network_app/internal/core/domain"
	portsrepo "github.com/retailnet/retail_network_app/internal/core/ports/repositories"
	"github.com/retailnet/retail_network_app/internal/models"
	"github.com/retailnet/retail_network_app/internal/utils/mapping"
	"github.com/retailnet/retail_network_app/internal/utils/pagination"
)

type PgxFundRequestRepository struct {
	BaseRepository
}

// newPgxFundRequestRepository creates a new repository for fund request workflow data.
func newPgxFundRequestRepository(pool *pgxpool.Pool) portsrepo.FundRequestRepositoryWithTx {
	return &PgxFundRequestRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxFundRequestRepository implements portsrepo.FundRequestRepositoryWithTx
var _ portsrepo.FundRequestRepositoryWithTx = (*PgxFundRequestRepository)(nil)

const fundRequestColumns = `request_id, from_scope_id, to_scope_id, amount, status, notes, rejection_reason, requested_at, processed_at, created_at, created_by, last_updated_at, last_updated_by`

func scanFundRequestRow(row pgx.Row) (models.FundRequest, error) {
	var m models.FundRequest
	err := row.Scan(
		&m.RequestID,
		&m.FromScopeID,
		&m.ToScopeID,
		&m.Amount,
		&m.Status,
		&m.Notes,
		&m.RejectionReason,
		&m.RequestedAt,
		&m.ProcessedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveFundRequest persists a new PENDING request.
func (r *PgxFundRequestRepository) SaveFundRequest(ctx context.Context, request domain.FundRequest) error {
	m := mapping.ToModelFundRequest(request)

	query := `
		INSERT INTO fund_requests (request_id, from_scope_id, to_scope_id, amount, status, notes, rejection_reason, requested_at, processed_at, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.RequestID,
		m.FromScopeID,
		m.ToScopeID,
		m.Amount,
		m.Status,
		m.Notes,
		m.RejectionReason,
		m.RequestedAt,
		m.ProcessedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(mapPgError(err), apperrors.ErrDuplicate) {
			return fmt.Errorf("%w: fund request with ID %s already exists", apperrors.ErrDuplicate, m.RequestID)
		}
		return fmt.Errorf("failed to save fund request %s: %w", m.RequestID, err)
	}
	return nil
}

// FindFundRequestByID retrieves a fund request by its ID.
func (r *PgxFundRequestRepository) FindFundRequestByID(ctx context.Context, requestID string) (*domain.FundRequest, error) {
	query := `SELECT ` + fundRequestColumns + ` FROM fund_requests WHERE request_id = $1;`

	m, err := scanFundRequestRow(r.Pool.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fund request by ID %s: %w", requestID, err)
	}

	d := mapping.ToDomainFundRequest(m)
	return &d, nil
}

func (r *PgxFundRequestRepository) listByScopeColumn(ctx context.Context, column string, scopeID string, limit int, nextToken *string) ([]domain.FundRequest, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + fundRequestColumns + ` FROM fund_requests WHERE ` + column + ` = $1`
	args := []interface{}{scopeID}

	if nextToken != nil && *nextToken != "" {
		createdAt, requestID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (created_at, request_id) < ($2, $3)`
		args = append(args, createdAt, requestID)
	}

	query += fmt.Sprintf(` ORDER BY created_at DESC, request_id DESC LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query fund requests for scope %s: %w", scopeID, err)
	}
	defer rows.Close()

	requests := []models.FundRequest{}
	for rows.Next() {
		m, err := scanFundRequestRow(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan fund request row: %w", err)
		}
		requests = append(requests, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating fund request rows: %w", err)
	}

	var newToken *string
	if len(requests) > limit {
		requests = requests[:limit]
		last := requests[len(requests)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.RequestID)
		newToken = &token
	}

	return mapping.ToDomainFundRequestSlice(requests), newToken, nil
}

// ListAsRequester retrieves a paginated list of requests a scope raised.
func (r *PgxFundRequestRepository) ListAsRequester(ctx context.Context, scopeID string, limit int, nextToken *string) ([]domain.FundRequest, *string, error) {
	return r.listByScopeColumn(ctx, "from_scope_id", scopeID, limit, nextToken)
}

// ListAsFunder retrieves a paginated list of requests a scope funds.
func (r *PgxFundRequestRepository) ListAsFunder(ctx context.Context, scopeID string, limit int, nextToken *string) ([]domain.FundRequest, *string, error) {
	return r.listByScopeColumn(ctx, "to_scope_id", scopeID, limit, nextToken)
}

const markProcessedQuery = `
	UPDATE fund_requests
	SET status = $2, rejection_reason = COALESCE($3, rejection_reason), processed_at = $4, last_updated_at = $4, last_updated_by = $5
	WHERE request_id = $1 AND status = 'PENDING';
`

// MarkProcessed stamps a PENDING request APPROVED or REJECTED. The update is
// conditional on status PENDING so a request is processed at most once.
func (r *PgxFundRequestRepository) MarkProcessed(ctx context.Context, requestID string, status domain.FundRequestStatus, rejectionReason *string, processedAt time.Time, userID string) error {
	var reason interface{}
	if rejectionReason != nil {
		reason = *rejectionReason
	}

	cmdTag, err := r.Pool.Exec(ctx, markProcessedQuery, requestID, string(status), reason, processedAt, userID)
	if err != nil {
		return fmt.Errorf("failed to mark fund request %s %s: %w", requestID, status, mapPgError(err))
	}
	if cmdTag.RowsAffected() == 0 {
		_, findErr := r.FindFundRequestByID(ctx, requestID)
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return fmt.Errorf("failed to check fund request status after processing attempt for %s: %w", requestID, findErr)
		}
		return fmt.Errorf("%w: fund request %s is not in status PENDING", apperrors.ErrInvalidState, requestID)
	}
	return nil
}

// FindFundRequestForUpdateInTx retrieves a request and locks its row for
// update. Must be called within a transaction.
func (r *PgxFundRequestRepository) FindFundRequestForUpdateInTx(ctx context.Context, tx pgx.Tx, requestID string) (*domain.FundRequest, error) {
	query := `SELECT ` + fundRequestColumns + ` FROM fund_requests WHERE request_id = $1 FOR UPDATE;`

	m, err := scanFundRequestRow(tx.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock fund request %s: %w", requestID, mapPgError(err))
	}

	d := mapping.ToDomainFundRequest(m)
	return &d, nil
}

// MarkProcessedInTx stamps a request within a transaction. The row must
// already be locked and verified PENDING by the caller.
func (r *PgxFundRequestRepository) MarkProcessedInTx(ctx context.Context, tx pgx.Tx, requestID string, status domain.FundRequestStatus, rejectionReason *string, processedAt time.Time, userID string) error {
	var reason interface{}
	if rejectionReason != nil {
		reason = *rejectionReason
	}

	cmdTag, err := tx.Exec(ctx, markProcessedQuery, requestID, string(status), reason, processedAt, userID)
	if err != nil {
		return fmt.Errorf("failed to mark fund request %s %s: %w", requestID, status, mapPgError(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: fund request %s is not in status PENDING", apperrors.ErrInvalidState, requestID)
	}
	return nil
}
