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
)

type PgxScopeRepository struct {
	pool *pgxpool.Pool
}

// newPgxScopeRepository creates a new repository for scope hierarchy data.
func newPgxScopeRepository(pool *pgxpool.Pool) portsrepo.ScopeRepositoryFacade {
	return &PgxScopeRepository{pool: pool}
}

// Ensure PgxScopeRepository implements portsrepo.ScopeRepositoryFacade
var _ portsrepo.ScopeRepositoryFacade = (*PgxScopeRepository)(nil)

const scopeColumns = `scope_id, company_id, name, level, parent_id, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanScopeRow(row pgx.Row) (models.ScopeNode, error) {
	var m models.ScopeNode
	err := row.Scan(
		&m.ScopeID,
		&m.CompanyID,
		&m.Name,
		&m.Level,
		&m.ParentID,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveScope inserts a new scope node.
func (r *PgxScopeRepository) SaveScope(ctx context.Context, scope domain.ScopeNode) error {
	m := mapping.ToModelScopeNode(scope)

	query := `
		INSERT INTO scopes (scope_id, company_id, name, level, parent_id, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.pool.Exec(ctx, query,
		m.ScopeID,
		m.CompanyID,
		m.Name,
		m.Level,
		m.ParentID,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(mapPgError(err), apperrors.ErrDuplicate) {
			return fmt.Errorf("%w: scope with ID %s already exists", apperrors.ErrDuplicate, m.ScopeID)
		}
		return fmt.Errorf("failed to save scope %s: %w", m.ScopeID, err)
	}
	return nil
}

// FindScopeByID retrieves a scope node by its ID.
func (r *PgxScopeRepository) FindScopeByID(ctx context.Context, scopeID string) (*domain.ScopeNode, error) {
	query := `SELECT ` + scopeColumns + ` FROM scopes WHERE scope_id = $1;`

	m, err := scanScopeRow(r.pool.QueryRow(ctx, query, scopeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find scope by ID %s: %w", scopeID, err)
	}

	d := mapping.ToDomainScopeNode(m)
	return &d, nil
}

// FindScopesByIDs retrieves multiple scope nodes by their IDs.
// IDs that do not exist are simply absent from the result map.
func (r *PgxScopeRepository) FindScopesByIDs(ctx context.Context, scopeIDs []string) (map[string]domain.ScopeNode, error) {
	if len(scopeIDs) == 0 {
		return map[string]domain.ScopeNode{}, nil
	}

	query := `SELECT ` + scopeColumns + ` FROM scopes WHERE scope_id = ANY($1);`

	rows, err := r.pool.Query(ctx, query, scopeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query scopes by IDs: %w", err)
	}
	defer rows.Close()

	scopesMap := make(map[string]domain.ScopeNode)
	for rows.Next() {
		m, err := scanScopeRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scope row during batch fetch: %w", err)
		}
		scopesMap[m.ScopeID] = mapping.ToDomainScopeNode(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scope rows during batch fetch: %w", err)
	}

	return scopesMap, nil
}

// FindAncestorIDs walks the parent chain with a recursive CTE and returns the
// IDs on the path from scopeID up to its company root, scopeID first.
func (r *PgxScopeRepository) FindAncestorIDs(ctx context.Context, scopeID string) ([]string, error) {
	query := `
		WITH RECURSIVE chain AS (
			SELECT scope_id, parent_id, 0 AS depth
			FROM scopes WHERE scope_id = $1
			UNION ALL
			SELECT s.scope_id, s.parent_id, c.depth + 1
			FROM scopes s
			JOIN chain c ON s.scope_id = c.parent_id
		)
		SELECT scope_id FROM chain ORDER BY depth;
	`

	rows, err := r.pool.Query(ctx, query, scopeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ancestor chain for scope %s: %w", scopeID, err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan ancestor row for scope %s: %w", scopeID, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ancestor rows for scope %s: %w", scopeID, err)
	}

	if len(ids) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return ids, nil
}

// FindCompanyRoot retrieves the COMPANY level node for a company.
func (r *PgxScopeRepository) FindCompanyRoot(ctx context.Context, companyID string) (*domain.ScopeNode, error) {
	query := `SELECT ` + scopeColumns + ` FROM scopes WHERE company_id = $1 AND level = 'COMPANY';`

	m, err := scanScopeRow(r.pool.QueryRow(ctx, query, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find company root for %s: %w", companyID, err)
	}

	d := mapping.ToDomainScopeNode(m)
	return &d, nil
}

// ListChildren retrieves the direct children of a scope, active first, by name.
func (r *PgxScopeRepository) ListChildren(ctx context.Context, scopeID string) ([]domain.ScopeNode, error) {
	query := `SELECT ` + scopeColumns + ` FROM scopes WHERE parent_id = $1 ORDER BY is_active DESC, name;`

	rows, err := r.pool.Query(ctx, query, scopeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query children of scope %s: %w", scopeID, err)
	}
	defer rows.Close()

	children := []models.ScopeNode{}
	for rows.Next() {
		m, err := scanScopeRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan child scope row: %w", err)
		}
		children = append(children, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating child scope rows: %w", err)
	}

	return mapping.ToDomainScopeNodeSlice(children), nil
}

// CountActiveChildren reports how many direct active children a scope has.
func (r *PgxScopeRepository) CountActiveChildren(ctx context.Context, scopeID string) (int, error) {
	query := `SELECT COUNT(*) FROM scopes WHERE parent_id = $1 AND is_active = TRUE;`

	var count int
	if err := r.pool.QueryRow(ctx, query, scopeID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active children of scope %s: %w", scopeID, err)
	}
	return count, nil
}

// DeactivateScope marks a scope as inactive.
func (r *PgxScopeRepository) DeactivateScope(ctx context.Context, scopeID string, userID string, now time.Time) error {
	query := `
		UPDATE scopes
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE scope_id = $1 AND is_active = TRUE;
	`

	cmdTag, err := r.pool.Exec(ctx, query, scopeID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate scope %s: %w", scopeID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		_, findErr := r.FindScopeByID(ctx, scopeID)
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return fmt.Errorf("failed to check scope status after deactivation attempt for %s: %w", scopeID, findErr)
		}
		// Scope exists but was already inactive.
		return apperrors.ErrValidation
	}
	return nil
}
