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

type PgxInventoryRepository struct {
	BaseRepository
}

// newPgxInventoryRepository creates a new repository for stock balances and the inventory ledger.
func newPgxInventoryRepository(pool *pgxpool.Pool) portsrepo.InventoryRepositoryWithTx {
	return &PgxInventoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxInventoryRepository implements portsrepo.InventoryRepositoryWithTx
var _ portsrepo.InventoryRepositoryWithTx = (*PgxInventoryRepository)(nil)

const stockBalanceColumns = `scope_id, product_id, qty_on_hand, created_at, created_by, last_updated_at, last_updated_by`

func scanStockBalanceRow(row pgx.Row) (models.StockBalance, error) {
	var m models.StockBalance
	err := row.Scan(
		&m.ScopeID,
		&m.ProductID,
		&m.QtyOnHand,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindStockBalance retrieves the balance row for one (scope, product) pair.
func (r *PgxInventoryRepository) FindStockBalance(ctx context.Context, scopeID string, productID string) (*domain.StockBalance, error) {
	query := `SELECT ` + stockBalanceColumns + ` FROM stock_balances WHERE scope_id = $1 AND product_id = $2;`

	m, err := scanStockBalanceRow(r.Pool.QueryRow(ctx, query, scopeID, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find stock balance for scope %s product %s: %w", scopeID, productID, err)
	}

	d := mapping.ToDomainStockBalance(m)
	return &d, nil
}

// ListStockBalancesByScope retrieves every balance row a scope holds.
func (r *PgxInventoryRepository) ListStockBalancesByScope(ctx context.Context, scopeID string) ([]domain.StockBalance, error) {
	query := `SELECT ` + stockBalanceColumns + ` FROM stock_balances WHERE scope_id = $1 ORDER BY product_id;`

	rows, err := r.Pool.Query(ctx, query, scopeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock balances for scope %s: %w", scopeID, err)
	}
	defer rows.Close()

	balances := []models.StockBalance{}
	for rows.Next() {
		m, err := scanStockBalanceRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock balance row for scope %s: %w", scopeID, err)
		}
		balances = append(balances, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock balance rows for scope %s: %w", scopeID, err)
	}

	return mapping.ToDomainStockBalanceSlice(balances), nil
}

const inventoryEntryColumns = `entry_id, scope_id, product_id, qty_change, txn_type, ref_type, ref_id, created_at, created_by`

func scanInventoryEntryRow(row pgx.Row) (models.InventoryLedgerEntry, error) {
	var m models.InventoryLedgerEntry
	err := row.Scan(
		&m.EntryID,
		&m.ScopeID,
		&m.ProductID,
		&m.QtyChange,
		&m.TxnType,
		&m.RefType,
		&m.RefID,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	return m, err
}

// ListInventoryEntries retrieves inventory ledger entries for one pair, newest
// first, with keyset pagination on (created_at, entry_id).
func (r *PgxInventoryRepository) ListInventoryEntries(ctx context.Context, scopeID string, productID string, limit int, nextToken *string) ([]domain.InventoryLedgerEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT ` + inventoryEntryColumns + `
		FROM inventory_ledger
		WHERE scope_id = $1 AND product_id = $2
	`
	args := []interface{}{scopeID, productID}

	if nextToken != nil && *nextToken != "" {
		createdAt, entryID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (created_at, entry_id) < ($3, $4)`
		args = append(args, createdAt, entryID)
	}

	query += fmt.Sprintf(` ORDER BY created_at DESC, entry_id DESC LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query inventory entries for scope %s product %s: %w", scopeID, productID, err)
	}
	defer rows.Close()

	entries := []models.InventoryLedgerEntry{}
	for rows.Next() {
		m, err := scanInventoryEntryRow(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan inventory entry row: %w", err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating inventory entry rows: %w", err)
	}

	var newToken *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.EntryID)
		newToken = &token
	}

	return mapping.ToDomainInventoryLedgerEntrySlice(entries), newToken, nil
}

// FindStockBalanceForUpdateInTx selects the balance row for a pair and locks
// it for update. Must be called within a transaction.
func (r *PgxInventoryRepository) FindStockBalanceForUpdateInTx(ctx context.Context, tx pgx.Tx, scopeID string, productID string) (*domain.StockBalance, error) {
	query := `SELECT ` + stockBalanceColumns + ` FROM stock_balances WHERE scope_id = $1 AND product_id = $2 FOR UPDATE;`

	m, err := scanStockBalanceRow(tx.QueryRow(ctx, query, scopeID, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock stock balance for scope %s product %s: %w", scopeID, productID, mapPgError(err))
	}

	d := mapping.ToDomainStockBalance(m)
	return &d, nil
}

// ApplyStockBalanceChangeInTx applies one signed quantity delta to a balance
// row within a transaction, creating the row when absent, and returns the
// resulting quantity. The conflict arm adds the delta to the stored quantity
// rather than replacing it: a first-creation movement that races another
// writer lands on top of the committed row instead of overwriting it, and
// the (scope_id, product_id) unique constraint keeps concurrent first writes
// from producing duplicate rows.
func (r *PgxInventoryRepository) ApplyStockBalanceChangeInTx(ctx context.Context, tx pgx.Tx, scopeID string, productID string, qtyChange int64, userID string, now time.Time) (int64, error) {
	query := `
		INSERT INTO stock_balances (scope_id, product_id, qty_on_hand, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $4, $5)
		ON CONFLICT (scope_id, product_id) DO UPDATE
		SET qty_on_hand = stock_balances.qty_on_hand + EXCLUDED.qty_on_hand,
		    last_updated_at = EXCLUDED.last_updated_at,
		    last_updated_by = EXCLUDED.last_updated_by
		RETURNING qty_on_hand;
	`
	var newQty int64
	err := tx.QueryRow(ctx, query, scopeID, productID, qtyChange, now, userID).Scan(&newQty)
	if err != nil {
		return 0, fmt.Errorf("failed to apply stock balance change for scope %s product %s: %w", scopeID, productID, mapPgError(err))
	}
	return newQty, nil
}

// SaveInventoryEntryInTx appends one immutable inventory ledger entry within a transaction.
func (r *PgxInventoryRepository) SaveInventoryEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.InventoryLedgerEntry) error {
	m := mapping.ToModelInventoryLedgerEntry(entry)

	query := `
		INSERT INTO inventory_ledger (entry_id, scope_id, product_id, qty_change, txn_type, ref_type, ref_id, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := tx.Exec(ctx, query,
		m.EntryID,
		m.ScopeID,
		m.ProductID,
		m.QtyChange,
		m.TxnType,
		m.RefType,
		m.RefID,
		m.CreatedAt,
		m.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save inventory entry %s: %w", m.EntryID, mapPgError(err))
	}
	return nil
}
