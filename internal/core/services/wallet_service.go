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
	"github.com/shopspring/decimal"
)

// WalletService is the single mutation surface for money. Every balance
// change goes through Transfer or TransferInTx, which lock the wallet rows,
// append one ledger entry and apply the deltas in the same transaction.
type WalletService struct {
	WalletRepository portsrepo.WalletRepositoryWithTx
	ScopeSvc         portssvc.ScopeAuthorizerSvc
}

func NewWalletService(repo portsrepo.WalletRepositoryWithTx, scopeSvc portssvc.ScopeAuthorizerSvc) *WalletService {
	return &WalletService{WalletRepository: repo, ScopeSvc: scopeSvc}
}

// GetWalletByID retrieves a wallet. The caller's scope must be
// self-or-ancestor of the wallet's scope.
func (s *WalletService) GetWalletByID(ctx context.Context, caller domain.CallerContext, walletID string) (*domain.Wallet, error) {
	wallet, err := s.WalletRepository.FindWalletByID(ctx, walletID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find wallet", slog.String("error", err.Error()), slog.String("wallet_id", walletID))
		}
		return nil, err
	}
	if err := s.ScopeSvc.AuthorizeScopeAction(ctx, caller, wallet.ScopeID); err != nil {
		return nil, err
	}
	return wallet, nil
}

// ListWalletsByScope retrieves every wallet a scope holds.
func (s *WalletService) ListWalletsByScope(ctx context.Context, caller domain.CallerContext, scopeID string) ([]domain.Wallet, error) {
	if err := s.ScopeSvc.AuthorizeScopeAction(ctx, caller, scopeID); err != nil {
		return nil, err
	}
	return s.WalletRepository.ListWalletsByScope(ctx, scopeID)
}

// ListLedgerEntries retrieves a paginated ledger listing for one wallet.
func (s *WalletService) ListLedgerEntries(ctx context.Context, caller domain.CallerContext, walletID string, params dto.ListParams) ([]domain.LedgerEntry, *string, error) {
	wallet, err := s.WalletRepository.FindWalletByID(ctx, walletID)
	if err != nil {
		return nil, nil, err
	}
	if err := s.ScopeSvc.AuthorizeScopeAction(ctx, caller, wallet.ScopeID); err != nil {
		return nil, nil, err
	}
	return s.WalletRepository.ListLedgerEntriesByWallet(ctx, walletID, params.Limit, params.NextToken)
}

// EnsureWallets idempotently creates the typed wallets for a scope.
func (s *WalletService) EnsureWallets(ctx context.Context, scopeID string, userID string) error {
	tx, err := s.WalletRepository.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = s.WalletRepository.Rollback(ctx, tx) }()

	if err := s.WalletRepository.EnsureWalletsInTx(ctx, tx, scopeID, userID, time.Now().UTC()); err != nil {
		return err
	}
	return s.WalletRepository.Commit(ctx, tx)
}

// GetOrCreateWallet returns the wallet of one type for a scope, creating the
// scope's wallets first if absent.
func (s *WalletService) GetOrCreateWallet(ctx context.Context, scopeID string, walletType domain.WalletType, userID string) (*domain.Wallet, error) {
	wallet, err := s.WalletRepository.FindWalletByScopeAndType(ctx, scopeID, walletType)
	if err == nil {
		return wallet, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	if err := s.EnsureWallets(ctx, scopeID, userID); err != nil {
		return nil, err
	}
	return s.WalletRepository.FindWalletByScopeAndType(ctx, scopeID, walletType)
}

// Transfer executes one money movement as its own atomic unit.
func (s *WalletService) Transfer(ctx context.Context, p portssvc.TransferParams) (*domain.LedgerEntry, error) {
	tx, err := s.WalletRepository.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.WalletRepository.Rollback(ctx, tx) }()

	entry, err := s.TransferInTx(ctx, tx, p)
	if err != nil {
		return nil, err
	}
	if err := s.WalletRepository.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return entry, nil
}

// TransferInTx executes one money movement inside a caller-owned transaction.
// The destination wallet always exists by the time this runs; the source, if
// any, is checked for sufficient balance under a row lock.
func (s *WalletService) TransferInTx(ctx context.Context, tx pgx.Tx, p portssvc.TransferParams) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !p.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: transfer amount must be positive, got %s", apperrors.ErrValidation, p.Amount)
	}
	if p.ToWalletID == "" {
		return nil, fmt.Errorf("%w: destination wallet is required", apperrors.ErrValidation)
	}
	if p.FromWalletID != nil && *p.FromWalletID == p.ToWalletID {
		return nil, fmt.Errorf("%w: source and destination wallets must differ", apperrors.ErrValidation)
	}

	walletIDs := []string{p.ToWalletID}
	if p.FromWalletID != nil {
		walletIDs = append(walletIDs, *p.FromWalletID)
	}

	wallets, err := s.WalletRepository.FindWalletsByIDsForUpdate(ctx, tx, walletIDs)
	if err != nil {
		return nil, err
	}

	if p.FromWalletID != nil {
		from := wallets[*p.FromWalletID]
		if from.Balance.LessThan(p.Amount) {
			shortfall := p.Amount.Sub(from.Balance)
			return nil, fmt.Errorf("%w: wallet %s holds %s, needs %s more to cover %s",
				apperrors.ErrInsufficientBalance, from.WalletID, from.Balance, shortfall, p.Amount)
		}
	}

	now := time.Now().UTC()
	entry := domain.LedgerEntry{
		EntryID:      uuid.NewString(),
		FromWalletID: p.FromWalletID,
		ToWalletID:   &p.ToWalletID,
		Amount:       p.Amount,
		RefType:      p.RefType,
		RefID:        p.RefID,
		Notes:        p.Notes,
		Charges:      p.Charges,
		CreatedAt:    now,
		CreatedBy:    p.ActorUserID,
	}
	if err := s.WalletRepository.SaveLedgerEntryInTx(ctx, tx, entry); err != nil {
		return nil, err
	}

	changes := map[string]decimal.Decimal{
		p.ToWalletID: p.Amount,
	}
	if p.FromWalletID != nil {
		changes[*p.FromWalletID] = p.Amount.Neg()
	}
	if err := s.WalletRepository.ApplyWalletBalanceChangesInTx(ctx, tx, changes, p.ActorUserID, now); err != nil {
		return nil, err
	}

	logger.Info("Money transfer applied",
		slog.String("entry_id", entry.EntryID),
		slog.String("ref_type", string(p.RefType)),
		slog.String("ref_id", p.RefID),
		slog.String("amount", p.Amount.String()),
	)
	return &entry, nil
}
