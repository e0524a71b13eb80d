package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/retailnet/retail_network_app/internal/apperrors"
	"github.com/retailnet/retail_network_app/internal/core/domain"
	portsrepo "github.com/retailnet/retail_network_app/internal/core/ports/repositories"
	portssvc "github.com/retailnet/retail_network_app/internal/core/ports/services"
	"github.com/retailnet/retail_network_app/internal/dto"
	"github.com/retailnet/retail_network_app/internal/middleware"
)

// InventoryService is the single mutation surface for stock. Every quantity
// change goes through Move or MoveInTx, which lock the balance row, append
// one inventory ledger entry and write the new quantity in the same
// transaction.
type InventoryService struct {
	InventoryRepository portsrepo.InventoryRepositoryWithTx
	ScopeSvc            portssvc.ScopeAuthorizerSvc
}

func NewInventoryService(repo portsrepo.InventoryRepositoryWithTx, scopeSvc portssvc.ScopeAuthorizerSvc) *InventoryService {
	return &InventoryService{InventoryRepository: repo, ScopeSvc: scopeSvc}
}

// GetBalance retrieves the stock balance for a pair. A missing row reads as
// zero quantity rather than an error.
func (s *InventoryService) GetBalance(ctx context.Context, caller domain.CallerContext, scopeID string, productID string) (*domain.StockBalance, error) {
	if err := s.ScopeSvc.AuthorizeScopeAction(ctx, caller, scopeID); err != nil {
		return nil, err
	}
	balance, err := s.InventoryRepository.FindStockBalance(ctx, scopeID, productID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &domain.StockBalance{ScopeID: scopeID, ProductID: productID, QtyOnHand: 0}, nil
		}
		return nil, err
	}
	return balance, nil
}

// ListBalancesByScope retrieves every balance row a scope holds.
func (s *InventoryService) ListBalancesByScope(ctx context.Context, caller domain.CallerContext, scopeID string) ([]domain.StockBalance, error) {
	if err := s.ScopeSvc.AuthorizeScopeAction(ctx, caller, scopeID); err != nil {
		return nil, err
	}
	return s.InventoryRepository.ListStockBalancesByScope(ctx, scopeID)
}

// ListEntries retrieves a paginated inventory ledger listing for a pair.
func (s *InventoryService) ListEntries(ctx context.Context, caller domain.CallerContext, scopeID string, productID string, params dto.ListParams) ([]domain.InventoryLedgerEntry, *string, error) {
	if err := s.ScopeSvc.AuthorizeScopeAction(ctx, caller, scopeID); err != nil {
		return nil, nil, err
	}
	return s.InventoryRepository.ListInventoryEntries(ctx, scopeID, productID, params.Limit, params.NextToken)
}

// Move applies one signed quantity change as its own atomic unit.
func (s *InventoryService) Move(ctx context.Context, p portssvc.MoveParams) error {
	tx, err := s.InventoryRepository.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = s.InventoryRepository.Rollback(ctx, tx) }()

	if err := s.MoveInTx(ctx, tx, p); err != nil {
		return err
	}
	return s.InventoryRepository.Commit(ctx, tx)
}

// MoveInTx applies one signed quantity change inside a caller-owned
// transaction. AllowNegative lets receiving legs create a balance row from
// nothing; outbound legs without it fail on insufficient stock.
func (s *InventoryService) MoveInTx(ctx context.Context, tx pgx.Tx, p portssvc.MoveParams) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if p.QtyChange == 0 {
		return fmt.Errorf("%w: quantity change must be non-zero", apperrors.ErrValidation)
	}

	now := time.Now().UTC()

	current, err := s.InventoryRepository.FindStockBalanceForUpdateInTx(ctx, tx, p.ScopeID, p.ProductID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	// A locked row gives an exact early check. When the row is absent the
	// read locked nothing, so the check moves past the write: the delta is
	// applied relative to whatever quantity a concurrent first writer may
	// have committed, and the returned quantity decides.
	if current != nil && current.QtyOnHand+p.QtyChange < 0 && !p.AllowNegative {
		return fmt.Errorf("%w: scope %s holds %d of product %s, cannot remove %d",
			apperrors.ErrInsufficientStock, p.ScopeID, current.QtyOnHand, p.ProductID, -p.QtyChange)
	}

	newQty, err := s.InventoryRepository.ApplyStockBalanceChangeInTx(ctx, tx, p.ScopeID, p.ProductID, p.QtyChange, p.ActorUserID, now)
	if err != nil {
		return err
	}
	if newQty < 0 && !p.AllowNegative {
		return fmt.Errorf("%w: scope %s holds %d of product %s, cannot remove %d",
			apperrors.ErrInsufficientStock, p.ScopeID, newQty-p.QtyChange, p.ProductID, -p.QtyChange)
	}

	entry := domain.InventoryLedgerEntry{
		EntryID:   uuid.NewString(),
		ScopeID:   p.ScopeID,
		ProductID: p.ProductID,
		QtyChange: p.QtyChange,
		TxnType:   p.TxnType,
		RefType:   p.RefType,
		RefID:     p.RefID,
		CreatedAt: now,
		CreatedBy: p.ActorUserID,
	}
	if err := s.InventoryRepository.SaveInventoryEntryInTx(ctx, tx, entry); err != nil {
		return err
	}

	logger.Info("Stock movement applied",
		slog.String("entry_id", entry.EntryID),
		slog.String("scope_id", p.ScopeID),
		slog.String("product_id", p.ProductID),
		slog.Int64("qty_change", p.QtyChange),
		slog.Int64("qty_on_hand", newQty),
	)
	return nil
}
