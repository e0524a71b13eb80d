package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/retailnet/retail_network_app/internal/apperrors"
	"github.com/retailnet/retail_network_app/internal/core/domain"
	portsrepo "github.com/retailnet/retail_network_app/internal/core/ports/repositories"
	"github.com/retailnet/retail_network_app/internal/models"
	"github.com/retailnet/retail_network_app/internal/utils/mapping"
	"github.com/retailnet/retail_network_app/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

type PgxWalletRepository struct {
	BaseRepository
}

// newPgxWalletRepository creates a new repository for wallet and money ledger data.
func newPgxWalletRepository(pool *pgxpool.Pool) portsrepo.WalletRepositoryWithTx {
	return &PgxWalletRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxWalletRepository implements portsrepo.WalletRepositoryWithTx
var _ portsrepo.WalletRepositoryWithTx = (*PgxWalletRepository)(nil)

const walletColumns = `wallet_id, scope_id, wallet_type, balance, created_at, created_by, last_updated_at, last_updated_by`

func scanWalletRow(row pgx.Row) (models.Wallet, error) {
	var m models.Wallet
	err := row.Scan(
		&m.WalletID,
		&m.ScopeID,
		&m.Type,
		&m.Balance,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindWalletByID retrieves a wallet by its ID.
func (r *PgxWalletRepository) FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE wallet_id = $1;`

	m, err := scanWalletRow(r.Pool.QueryRow(ctx, query, walletID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find wallet by ID %s: %w", walletID, err)
	}

	d := mapping.ToDomainWallet(m)
	return &d, nil
}

// FindWalletByScopeAndType retrieves the wallet of one type for a scope.
func (r *PgxWalletRepository) FindWalletByScopeAndType(ctx context.Context, scopeID string, walletType domain.WalletType) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE scope_id = $1 AND wallet_type = $2;`

	m, err := scanWalletRow(r.Pool.QueryRow(ctx, query, scopeID, string(walletType)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find %s wallet for scope %s: %w", walletType, scopeID, err)
	}

	d := mapping.ToDomainWallet(m)
	return &d, nil
}

// ListWalletsByScope retrieves every wallet a scope holds.
func (r *PgxWalletRepository) ListWalletsByScope(ctx context.Context, scopeID string) ([]domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE scope_id = $1 ORDER BY wallet_type;`

	rows, err := r.Pool.Query(ctx, query, scopeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallets for scope %s: %w", scopeID, err)
	}
	defer rows.Close()

	wallets := []models.Wallet{}
	for rows.Next() {
		m, err := scanWalletRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wallet row for scope %s: %w", scopeID, err)
		}
		wallets = append(wallets, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wallet rows for scope %s: %w", scopeID, err)
	}

	return mapping.ToDomainWalletSlice(wallets), nil
}

const ledgerEntryColumns = `entry_id, from_wallet_id, to_wallet_id, amount, ref_type, ref_id, notes, admin_charge, tax, commission, created_at, created_by`

func scanLedgerEntryRow(row pgx.Row) (models.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.EntryID,
		&m.FromWalletID,
		&m.ToWalletID,
		&m.Amount,
		&m.RefType,
		&m.RefID,
		&m.Notes,
		&m.AdminCharge,
		&m.Tax,
		&m.Commission,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	return m, err
}

// ListLedgerEntriesByWallet retrieves ledger entries touching a wallet, newest
// first, with keyset pagination on (created_at, entry_id).
func (r *PgxWalletRepository) ListLedgerEntriesByWallet(ctx context.Context, walletID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT ` + ledgerEntryColumns + `
		FROM ledger_entries
		WHERE (from_wallet_id = $1 OR to_wallet_id = $1)
	`
	args := []interface{}{walletID}

	if nextToken != nil && *nextToken != "" {
		createdAt, entryID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (created_at, entry_id) < ($2, $3)`
		args = append(args, createdAt, entryID)
	}

	// Fetch one extra row to detect whether another page exists.
	query += fmt.Sprintf(` ORDER BY created_at DESC, entry_id DESC LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query ledger entries for wallet %s: %w", walletID, err)
	}
	defer rows.Close()

	entries := []models.LedgerEntry{}
	for rows.Next() {
		m, err := scanLedgerEntryRow(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan ledger entry row: %w", err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating ledger entry rows: %w", err)
	}

	var newToken *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.EntryID)
		newToken = &token
	}

	return mapping.ToDomainLedgerEntrySlice(entries), newToken, nil
}

// EnsureWalletsInTx idempotently creates the typed wallets for a scope. The
// (scope_id, wallet_type) unique constraint makes concurrent first-access
// calls converge on a single row per type.
func (r *PgxWalletRepository) EnsureWalletsInTx(ctx context.Context, tx pgx.Tx, scopeID string, userID string, now time.Time) error {
	query := `
		INSERT INTO wallets (wallet_id, scope_id, wallet_type, balance, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, 0, $4, $5, $4, $5)
		ON CONFLICT (scope_id, wallet_type) DO NOTHING;
	`

	batch := &pgx.Batch{}
	for _, wt := range domain.AllWalletTypes {
		batch.Queue(query, uuid.NewString(), scopeID, string(wt), now, userID)
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil && batchErr == nil {
			batchErr = fmt.Errorf("failed to ensure wallets for scope %s: %w", scopeID, mapPgError(err))
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close ensure wallets batch: %w", err)
	}
	return batchErr
}

// FindWalletsByIDsForUpdate retrieves wallets by IDs and locks the rows for
// update. Must be called within a transaction. Wallet IDs are sorted by the
// query so concurrent transfers lock rows in a consistent order.
func (r *PgxWalletRepository) FindWalletsByIDsForUpdate(ctx context.Context, tx pgx.Tx, walletIDs []string) (map[string]domain.Wallet, error) {
	if len(walletIDs) == 0 {
		return map[string]domain.Wallet{}, nil
	}

	query := `
		SELECT ` + walletColumns + `
		FROM wallets
		WHERE wallet_id = ANY($1)
		ORDER BY wallet_id
		FOR UPDATE;
	`

	rows, err := tx.Query(ctx, query, walletIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallets by IDs for update: %w", mapPgError(err))
	}
	defer rows.Close()

	walletsMap := make(map[string]domain.Wallet)
	for rows.Next() {
		m, err := scanWalletRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked wallet row: %w", err)
		}
		walletsMap[m.WalletID] = mapping.ToDomainWallet(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked wallet rows: %w", err)
	}

	if len(walletsMap) != len(walletIDs) {
		missing := []string{}
		for _, id := range walletIDs {
			if _, found := walletsMap[id]; !found {
				missing = append(missing, id)
			}
		}
		slog.WarnContext(ctx, "Some wallets requested for update lock were not found", "missing_wallets", missing)
		return nil, fmt.Errorf("%w: could not find or lock all requested wallets, missing: %v", apperrors.ErrNotFound, missing)
	}

	return walletsMap, nil
}

// SaveLedgerEntryInTx appends one immutable ledger entry within a transaction.
func (r *PgxWalletRepository) SaveLedgerEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error {
	m := mapping.ToModelLedgerEntry(entry)

	query := `
		INSERT INTO ledger_entries (entry_id, from_wallet_id, to_wallet_id, amount, ref_type, ref_id, notes, admin_charge, tax, commission, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := tx.Exec(ctx, query,
		m.EntryID,
		m.FromWalletID,
		m.ToWalletID,
		m.Amount,
		m.RefType,
		m.RefID,
		m.Notes,
		m.AdminCharge,
		m.Tax,
		m.Commission,
		m.CreatedAt,
		m.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save ledger entry %s: %w", m.EntryID, mapPgError(err))
	}
	return nil
}

// ApplyWalletBalanceChangesInTx applies signed balance deltas to multiple
// wallets within a transaction. Rows must already be locked.
func (r *PgxWalletRepository) ApplyWalletBalanceChangesInTx(ctx context.Context, tx pgx.Tx, changes map[string]decimal.Decimal, userID string, now time.Time) error {
	if len(changes) == 0 {
		return nil
	}

	query := `
		UPDATE wallets
		SET balance = balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE wallet_id = $1;
	`

	batch := &pgx.Batch{}
	walletIDs := make([]string, 0, len(changes))
	for walletID, delta := range changes {
		if !delta.IsZero() {
			batch.Queue(query, walletID, delta, now, userID)
			walletIDs = append(walletIDs, walletID)
		}
	}
	if batch.Len() == 0 {
		return nil
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		ct, err := br.Exec()
		if err != nil {
			if batchErr == nil {
				batchErr = fmt.Errorf("failed to update balance for wallet %s: %w", walletIDs[i], mapPgError(err))
			}
		} else if ct.RowsAffected() == 0 {
			if batchErr == nil {
				batchErr = fmt.Errorf("%w: wallet %s not found during balance update", apperrors.ErrNotFound, walletIDs[i])
			}
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close balance update batch: %w", err)
	}
	return batchErr
}
