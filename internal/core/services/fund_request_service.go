package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/retailnet/retail_network_app/internal/apperrors"
	"github.com/retailnet/retail_network_app/internal/core/domain"
	portsrepo "github.com/retailnet/retail_network_app/internal/core/ports/repositories"
	portssvc "github.com/retailnet/retail_network_app/internal/core/ports/services"
	"github.com/retailnet/retail_network_app/internal/dto"
	"github.com/retailnet/retail_network_app/internal/middleware"
)

// FundRequestService drives the fund request state machine. Approval moves
// money between the two FUND wallets atomically with the status stamp.
type FundRequestService struct {
	FundRequestRepository portsrepo.FundRequestRepositoryWithTx
	ScopeSvc              portssvc.ScopeSvcFacade
	WalletSvc             portssvc.WalletEngineSvc
}

func NewFundRequestService(
	repo portsrepo.FundRequestRepositoryWithTx,
	scopeSvc portssvc.ScopeSvcFacade,
	walletSvc portssvc.WalletEngineSvc,
) *FundRequestService {
	return &FundRequestService{
		FundRequestRepository: repo,
		ScopeSvc:              scopeSvc,
		WalletSvc:             walletSvc,
	}
}

// Create validates that the funder is a proper ancestor of the caller's scope
// and persists a PENDING request.
func (s *FundRequestService) Create(ctx context.Context, req dto.CreateFundRequestRequest, caller domain.CallerContext) (*domain.FundRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: requested amount must be positive", apperrors.ErrValidation)
	}
	if req.ToScopeID == caller.ScopeID {
		return nil, fmt.Errorf("%w: a scope cannot request funds from itself", apperrors.ErrInvalidHierarchy)
	}

	if _, err := s.ScopeSvc.GetScopeByID(ctx, req.ToScopeID); err != nil {
		return nil, err
	}

	isAncestor, err := s.ScopeSvc.IsAncestorOrSelf(ctx, req.ToScopeID, caller.ScopeID)
	if err != nil {
		return nil, err
	}
	if !isAncestor {
		return nil, fmt.Errorf("%w: scope %s is not an ancestor of scope %s", apperrors.ErrInvalidHierarchy, req.ToScopeID, caller.ScopeID)
	}

	now := time.Now().UTC()
	request := domain.FundRequest{
		RequestID:   uuid.NewString(),
		FromScopeID: caller.ScopeID,
		ToScopeID:   req.ToScopeID,
		Amount:      req.Amount,
		Status:      domain.FundPending,
		Notes:       req.Notes,
		RequestedAt: now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     caller.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: caller.UserID,
		},
	}

	if err := s.FundRequestRepository.SaveFundRequest(ctx, request); err != nil {
		logger.Error("Failed to save fund request", slog.String("error", err.Error()), slog.String("request_id", request.RequestID))
		return nil, err
	}

	logger.Info("Fund request created",
		slog.String("request_id", request.RequestID),
		slog.String("to_scope_id", req.ToScopeID),
		slog.String("amount", req.Amount.String()),
	)
	return &request, nil
}

// Approve transfers funder FUND → requester FUND atomically with the
// APPROVED stamp. Any failure rolls back and leaves the request PENDING.
func (s *FundRequestService) Approve(ctx context.Context, requestID string, caller domain.CallerContext) (*domain.FundRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	request, err := s.FundRequestRepository.FindFundRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := s.ScopeSvc.AuthorizeScopeAction(ctx, caller, request.ToScopeID); err != nil {
		return nil, err
	}
	if request.Status != domain.FundPending {
		return nil, fmt.Errorf("%w: fund request %s is %s, only PENDING requests can be approved",
			apperrors.ErrInvalidState, requestID, request.Status)
	}

	// Wallet creation is idempotent and safe outside the movement
	// transaction.
	funderWallet, err := s.WalletSvc.GetOrCreateWallet(ctx, request.ToScopeID, domain.WalletFund, caller.UserID)
	if err != nil {
		return nil, err
	}
	requesterWallet, err := s.WalletSvc.GetOrCreateWallet(ctx, request.FromScopeID, domain.WalletFund, caller.UserID)
	if err != nil {
		return nil, err
	}

	tx, err := s.FundRequestRepository.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.FundRequestRepository.Rollback(ctx, tx) }()

	// Re-read under lock; a concurrent approval or rejection loses here.
	locked, err := s.FundRequestRepository.FindFundRequestForUpdateInTx(ctx, tx, requestID)
	if err != nil {
		return nil, err
	}
	if locked.Status != domain.FundPending {
		return nil, fmt.Errorf("%w: fund request %s is %s, only PENDING requests can be approved",
			apperrors.ErrInvalidState, requestID, locked.Status)
	}

	now := time.Now().UTC()
	_, err = s.WalletSvc.TransferInTx(ctx, tx, portssvc.TransferParams{
		FromWalletID: &funderWallet.WalletID,
		ToWalletID:   requesterWallet.WalletID,
		Amount:       locked.Amount,
		RefType:      domain.RefFundRequest,
		RefID:        requestID,
		Notes:        fmt.Sprintf("Fund request %s approved", requestID),
		ActorUserID:  caller.UserID,
	})
	if err != nil {
		return nil, err
	}

	if err := s.FundRequestRepository.MarkProcessedInTx(ctx, tx, requestID, domain.FundApproved, nil, now, caller.UserID); err != nil {
		return nil, err
	}
	if err := s.FundRequestRepository.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Fund request approved",
		slog.String("request_id", requestID),
		slog.String("amount", locked.Amount.String()),
	)
	return s.FundRequestRepository.FindFundRequestByID(ctx, requestID)
}

// Reject stamps a PENDING request REJECTED with a reason. No ledger effect.
func (s *FundRequestService) Reject(ctx context.Context, requestID string, reason string, caller domain.CallerContext) (*domain.FundRequest, error) {
	if reason == "" {
		return nil, fmt.Errorf("%w: a rejection reason is required", apperrors.ErrValidation)
	}

	request, err := s.FundRequestRepository.FindFundRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := s.ScopeSvc.AuthorizeScopeAction(ctx, caller, request.ToScopeID); err != nil {
		return nil, err
	}

	if err := s.FundRequestRepository.MarkProcessed(ctx, requestID, domain.FundRejected, &reason, time.Now().UTC(), caller.UserID); err != nil {
		return nil, err
	}
	return s.FundRequestRepository.FindFundRequestByID(ctx, requestID)
}

// GetByID retrieves a request. The caller must sit at or above either side.
func (s *FundRequestService) GetByID(ctx context.Context, requestID string, caller domain.CallerContext) (*domain.FundRequest, error) {
	request, err := s.FundRequestRepository.FindFundRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := s.ScopeSvc.AuthorizeScopeAction(ctx, caller, request.FromScopeID); err != nil {
		if err := s.ScopeSvc.AuthorizeScopeAction(ctx, caller, request.ToScopeID); err != nil {
			return nil, err
		}
	}
	return request, nil
}

// ListAsRequester lists requests raised by the given scope.
func (s *FundRequestService) ListAsRequester(ctx context.Context, scopeID string, params dto.ListParams, caller domain.CallerContext) ([]domain.FundRequest, *string, error) {
	if err := s.ScopeSvc.AuthorizeScopeAction(ctx, caller, scopeID); err != nil {
		return nil, nil, err
	}
	return s.FundRequestRepository.ListAsRequester(ctx, scopeID, params.Limit, params.NextToken)
}

// ListAsFunder lists requests addressed to the given scope.
func (s *FundRequestService) ListAsFunder(ctx context.Context, scopeID string, params dto.ListParams, caller domain.CallerContext) ([]domain.FundRequest, *string, error) {
	if err := s.ScopeSvc.AuthorizeScopeAction(ctx, caller, scopeID); err != nil {
		return nil, nil, err
	}
	return s.FundRequestRepository.ListAsFunder(ctx, scopeID, params.Limit, params.NextToken)
}
