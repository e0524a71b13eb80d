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

type PgxStockRequestRepository struct {
	BaseRepository
}

// newPgxStockRequestRepository creates a new repository for stock request workflow data.
func newPgxStockRequestRepository(pool *pgxpool.Pool) portsrepo.StockRequestRepositoryWithTx {
	return &PgxStockRequestRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxStockRequestRepository implements portsrepo.StockRequestRepositoryWithTx
var _ portsrepo.StockRequestRepositoryWithTx = (*PgxStockRequestRepository)(nil)

const stockRequestColumns = `request_id, from_scope_id, to_scope_id, status, rejection_reason, requested_at, approved_at, fulfilled_at, created_at, created_by, last_updated_at, last_updated_by`

func scanStockRequestRow(row pgx.Row) (models.StockRequest, error) {
	var m models.StockRequest
	err := row.Scan(
		&m.RequestID,
		&m.FromScopeID,
		&m.ToScopeID,
		&m.Status,
		&m.RejectionReason,
		&m.RequestedAt,
		&m.ApprovedAt,
		&m.FulfilledAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveStockRequest persists a new request header and its item rows in one
// transaction.
func (r *PgxStockRequestRepository) SaveStockRequest(ctx context.Context, request domain.StockRequest) error {
	m := mapping.ToModelStockRequest(request)
	items := mapping.ToModelStockRequestItems(request.Items)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	headerQuery := `
		INSERT INTO stock_requests (request_id, from_scope_id, to_scope_id, status, rejection_reason, requested_at, approved_at, fulfilled_at, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, headerQuery,
		m.RequestID,
		m.FromScopeID,
		m.ToScopeID,
		m.Status,
		m.RejectionReason,
		m.RequestedAt,
		m.ApprovedAt,
		m.FulfilledAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(mapPgError(err), apperrors.ErrDuplicate) {
			return fmt.Errorf("%w: stock request with ID %s already exists", apperrors.ErrDuplicate, m.RequestID)
		}
		return fmt.Errorf("failed to save stock request %s: %w", m.RequestID, err)
	}

	itemQuery := `
		INSERT INTO stock_request_items (item_id, request_id, product_id, qty)
		VALUES ($1, $2, $3, $4);
	`
	batch := &pgx.Batch{}
	for _, it := range items {
		batch.Queue(itemQuery, it.ItemID, it.RequestID, it.ProductID, it.Qty)
	}
	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil && batchErr == nil {
			batchErr = fmt.Errorf("failed to save stock request item for request %s: %w", m.RequestID, mapPgError(err))
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close stock request item batch: %w", err)
	}
	if batchErr != nil {
		return batchErr
	}

	return r.Commit(ctx, tx)
}

func (r *PgxStockRequestRepository) findItems(ctx context.Context, q interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}, requestID string) ([]models.StockRequestItem, error) {
	query := `SELECT item_id, request_id, product_id, qty FROM stock_request_items WHERE request_id = $1 ORDER BY item_id;`

	rows, err := q.Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for stock request %s: %w", requestID, err)
	}
	defer rows.Close()

	items := []models.StockRequestItem{}
	for rows.Next() {
		var it models.StockRequestItem
		if err := rows.Scan(&it.ItemID, &it.RequestID, &it.ProductID, &it.Qty); err != nil {
			return nil, fmt.Errorf("failed to scan stock request item row: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock request item rows: %w", err)
	}
	return items, nil
}

// FindStockRequestByID retrieves a request with its items.
func (r *PgxStockRequestRepository) FindStockRequestByID(ctx context.Context, requestID string) (*domain.StockRequest, error) {
	query := `SELECT ` + stockRequestColumns + ` FROM stock_requests WHERE request_id = $1;`

	m, err := scanStockRequestRow(r.Pool.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find stock request by ID %s: %w", requestID, err)
	}

	items, err := r.findItems(ctx, r.Pool, requestID)
	if err != nil {
		return nil, err
	}

	d := mapping.ToDomainStockRequest(m, items)
	return &d, nil
}

func (r *PgxStockRequestRepository) listByScopeColumn(ctx context.Context, column string, scopeID string, limit int, nextToken *string) ([]domain.StockRequest, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + stockRequestColumns + ` FROM stock_requests WHERE ` + column + ` = $1`
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
		return nil, nil, fmt.Errorf("failed to query stock requests for scope %s: %w", scopeID, err)
	}
	defer rows.Close()

	headers := []models.StockRequest{}
	for rows.Next() {
		m, err := scanStockRequestRow(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan stock request row: %w", err)
		}
		headers = append(headers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating stock request rows: %w", err)
	}

	var newToken *string
	if len(headers) > limit {
		headers = headers[:limit]
		last := headers[len(headers)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.RequestID)
		newToken = &token
	}

	requests := make([]domain.StockRequest, len(headers))
	for i, h := range headers {
		items, err := r.findItems(ctx, r.Pool, h.RequestID)
		if err != nil {
			return nil, nil, err
		}
		requests[i] = mapping.ToDomainStockRequest(h, items)
	}

	return requests, newToken, nil
}

// ListAsRequester retrieves a paginated list of requests a scope raised.
func (r *PgxStockRequestRepository) ListAsRequester(ctx context.Context, scopeID string, limit int, nextToken *string) ([]domain.StockRequest, *string, error) {
	return r.listByScopeColumn(ctx, "from_scope_id", scopeID, limit, nextToken)
}

// ListAsSupplier retrieves a paginated list of requests a scope supplies.
func (r *PgxStockRequestRepository) ListAsSupplier(ctx context.Context, scopeID string, limit int, nextToken *string) ([]domain.StockRequest, *string, error) {
	return r.listByScopeColumn(ctx, "to_scope_id", scopeID, limit, nextToken)
}

// TransitionStatus moves a request from one status to another. The update is
// conditional on the expected current status so concurrent transitions lose
// cleanly instead of double-applying.
func (r *PgxStockRequestRepository) TransitionStatus(ctx context.Context, requestID string, from, to domain.StockRequestStatus, rejectionReason *string, stampedAt time.Time, userID string) error {
	query := `
		UPDATE stock_requests
		SET status = $3,
		    rejection_reason = COALESCE($4, rejection_reason),
		    approved_at = CASE WHEN $3 = 'APPROVED' THEN $5 ELSE approved_at END,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE request_id = $1 AND status = $2;
	`

	var reason interface{}
	if rejectionReason != nil {
		reason = *rejectionReason
	}

	cmdTag, err := r.Pool.Exec(ctx, query, requestID, string(from), string(to), reason, stampedAt, userID)
	if err != nil {
		return fmt.Errorf("failed to transition stock request %s from %s to %s: %w", requestID, from, to, mapPgError(err))
	}
	if cmdTag.RowsAffected() == 0 {
		_, findErr := r.FindStockRequestByID(ctx, requestID)
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return fmt.Errorf("failed to check stock request status after transition attempt for %s: %w", requestID, findErr)
		}
		return fmt.Errorf("%w: stock request %s is not in status %s", apperrors.ErrInvalidState, requestID, from)
	}
	return nil
}

// FindStockRequestForUpdateInTx retrieves a request with its items and locks
// the request row for update. Must be called within a transaction.
func (r *PgxStockRequestRepository) FindStockRequestForUpdateInTx(ctx context.Context, tx pgx.Tx, requestID string) (*domain.StockRequest, error) {
	query := `SELECT ` + stockRequestColumns + ` FROM stock_requests WHERE request_id = $1 FOR UPDATE;`

	m, err := scanStockRequestRow(tx.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock stock request %s: %w", requestID, mapPgError(err))
	}

	items, err := r.findItems(ctx, tx, requestID)
	if err != nil {
		return nil, err
	}

	d := mapping.ToDomainStockRequest(m, items)
	return &d, nil
}

// MarkFulfilledInTx stamps a request FULFILLED within a transaction. The row
// must already be locked and verified APPROVED by the caller.
func (r *PgxStockRequestRepository) MarkFulfilledInTx(ctx context.Context, tx pgx.Tx, requestID string, fulfilledAt time.Time, userID string) error {
	query := `
		UPDATE stock_requests
		SET status = 'FULFILLED', fulfilled_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE request_id = $1 AND status = 'APPROVED';
	`

	cmdTag, err := tx.Exec(ctx, query, requestID, fulfilledAt, userID)
	if err != nil {
		return fmt.Errorf("failed to mark stock request %s fulfilled: %w", requestID, mapPgError(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: stock request %s is not in status APPROVED", apperrors.ErrInvalidState, requestID)
	}
	return nil
}
