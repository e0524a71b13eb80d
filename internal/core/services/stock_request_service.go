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
	"github.com/shopspring/decimal"
)

// StockRequestService drives the stock request state machine and the atomic
// fulfillment that moves stock and money together.
type StockRequestService struct {
	StockRequestRepository portsrepo.StockRequestRepositoryWithTx
	ScopeSvc               portssvc.ScopeSvcFacade
	ProductSvc             portssvc.ProductSvcFacade
	WalletSvc              portssvc.WalletEngineSvc
	InventorySvc           portssvc.InventoryEngineSvc
	PricingSvc             portssvc.PricingSvc
}

func NewStockRequestService(
	repo portsrepo.StockRequestRepositoryWithTx,
	scopeSvc portssvc.ScopeSvcFacade,
	productSvc portssvc.ProductSvcFacade,
	walletSvc portssvc.WalletEngineSvc,
	inventorySvc portssvc.InventoryEngineSvc,
	pricingSvc portssvc.PricingSvc,
) *StockRequestService {
	return &StockRequestService{
		StockRequestRepository: repo,
		ScopeSvc:               scopeSvc,
		ProductSvc:             productSvc,
		WalletSvc:              walletSvc,
		InventorySvc:           inventorySvc,
		PricingSvc:             pricingSvc,
	}
}

// Create validates the hierarchy pairing and persists a DRAFT request raised
// by the caller's scope.
func (s *StockRequestService) Create(ctx context.Context, req dto.CreateStockRequestRequest, caller domain.CallerContext) (*domain.StockRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.ScopeSvc.ValidateRequestPair(ctx, caller.ScopeID, req.ToScopeID); err != nil {
		return nil, err
	}

	productIDs := make([]string, 0, len(req.Items))
	seen := map[string]bool{}
	for _, it := range req.Items {
		if seen[it.ProductID] {
			return nil, fmt.Errorf("%w: product %s appears more than once", apperrors.ErrValidation, it.ProductID)
		}
		seen[it.ProductID] = true
		productIDs = append(productIDs, it.ProductID)
	}

	products, err := s.ProductSvc.GetProductsByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	for _, id := range productIDs {
		p, ok := products[id]
		if !ok {
			return nil, fmt.Errorf("%w: product %s not found", apperrors.ErrValidation, id)
		}
		if !p.IsActive {
			return nil, fmt.Errorf("%w: product %s is inactive", apperrors.ErrValidation, id)
		}
	}

	now := time.Now().UTC()
	requestID := uuid.NewString()
	items := make([]domain.StockRequestItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = domain.StockRequestItem{
			ItemID:    uuid.NewString(),
			RequestID: requestID,
			ProductID: it.ProductID,
			Qty:       it.Qty,
		}
	}

	request := domain.StockRequest{
		RequestID:   requestID,
		FromScopeID: caller.ScopeID,
		ToScopeID:   req.ToScopeID,
		Status:      domain.StockDraft,
		Items:       items,
		RequestedAt: now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     caller.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: caller.UserID,
		},
	}

	if err := s.StockRequestRepository.SaveStockRequest(ctx, request); err != nil {
		logger.Error("Failed to save stock request", slog.String("error", err.Error()), slog.String("request_id", requestID))
		return nil, err
	}

	logger.Info("Stock request created", slog.String("request_id", requestID), slog.String("to_scope_id", req.ToScopeID))
	return &request, nil
}

// Submit moves a DRAFT request to SUBMITTED. Only the requesting side may submit.
func (s *StockRequestService) Submit(ctx context.Context, requestID string, caller domain.CallerContext) (*domain.StockRequest, error) {
	request, err := s.StockRequestRepository.FindStockRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := s.ScopeSvc.AuthorizeScopeAction(ctx, caller, request.FromScopeID); err != nil {
		return nil, err
	}

	if err := s.StockRequestRepository.TransitionStatus(ctx, requestID, domain.StockDraft, domain.StockSubmitted, nil, time.Now().UTC(), caller.UserID); err != nil {
		return nil, err
	}
	return s.StockRequestRepository.FindStockRequestByID(ctx, requestID)
}

// Approve moves a SUBMITTED request to APPROVED. The caller acts for the
// supplier scope.
func (s *StockRequestService) Approve(ctx context.Context, requestID string, caller domain.CallerContext) (*domain.StockRequest, error) {
	request, err := s.StockRequestRepository.FindStockRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := s.ScopeSvc.AuthorizeScopeAction(ctx, caller, request.ToScopeID); err != nil {
		return nil, err
	}

	if err := s.StockRequestRepository.TransitionStatus(ctx, requestID, domain.StockSubmitted, domain.StockApproved, nil, time.Now().UTC(), caller.UserID); err != nil {
		return nil, err
	}
	return s.StockRequestRepository.FindStockRequestByID(ctx, requestID)
}

// Reject moves a SUBMITTED request to REJECTED with a reason. The caller acts
// for the supplier scope.
func (s *StockRequestService) Reject(ctx context.Context, requestID string, reason string, caller domain.CallerContext) (*domain.StockRequest, error) {
	if reason == "" {
		return nil, fmt.Errorf("%w: a rejection reason is required", apperrors.ErrValidation)
	}

	request, err := s.StockRequestRepository.FindStockRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := s.ScopeSvc.AuthorizeScopeAction(ctx, caller, request.ToScopeID); err != nil {
		return nil, err
	}

	if err := s.StockRequestRepository.TransitionStatus(ctx, requestID, domain.StockSubmitted, domain.StockRejected, &reason, time.Now().UTC(), caller.UserID); err != nil {
		return nil, err
	}
	return s.StockRequestRepository.FindStockRequestByID(ctx, requestID)
}

// Fulfill executes an APPROVED movement atomically: for each item one
// outbound supplier leg and one inbound requester leg on the inventory
// ledger, plus one payment from the requester's FUND wallet to the supplier's
// INCOME wallet when the priced total is positive. Any failure rolls the
// whole transaction back and leaves the request APPROVED.
func (s *StockRequestService) Fulfill(ctx context.Context, requestID string, caller domain.CallerContext) (*domain.StockRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	request, err := s.StockRequestRepository.FindStockRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := s.ScopeSvc.AuthorizeScopeAction(ctx, caller, request.ToScopeID); err != nil {
		return nil, err
	}
	if request.Status != domain.StockApproved {
		return nil, fmt.Errorf("%w: stock request %s is %s, only APPROVED requests can be fulfilled",
			apperrors.ErrInvalidState, requestID, request.Status)
	}

	// Price the movement at the supplier's scope before opening the
	// transaction; the pricing reads need no locks.
	total := decimal.Zero
	for _, it := range request.Items {
		unit, err := s.PricingSvc.EffectiveUnitPrice(ctx, request.ToScopeID, it.ProductID)
		if err != nil {
			return nil, err
		}
		total = total.Add(unit.Mul(decimal.NewFromInt(it.Qty)))
	}

	// Wallet creation is idempotent and safe outside the movement
	// transaction.
	var fromWallet, toWallet *domain.Wallet
	if total.IsPositive() {
		fromWallet, err = s.WalletSvc.GetOrCreateWallet(ctx, request.FromScopeID, domain.WalletFund, caller.UserID)
		if err != nil {
			return nil, err
		}
		toWallet, err = s.WalletSvc.GetOrCreateWallet(ctx, request.ToScopeID, domain.WalletIncome, caller.UserID)
		if err != nil {
			return nil, err
		}
	}

	tx, err := s.StockRequestRepository.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.StockRequestRepository.Rollback(ctx, tx) }()

	// Re-read under lock; a concurrent fulfillment loses here.
	locked, err := s.StockRequestRepository.FindStockRequestForUpdateInTx(ctx, tx, requestID)
	if err != nil {
		return nil, err
	}
	if locked.Status != domain.StockApproved {
		return nil, fmt.Errorf("%w: stock request %s is %s, only APPROVED requests can be fulfilled",
			apperrors.ErrInvalidState, requestID, locked.Status)
	}

	now := time.Now().UTC()
	for _, it := range locked.Items {
		out := portssvc.MoveParams{
			ScopeID:     locked.ToScopeID,
			ProductID:   it.ProductID,
			QtyChange:   -it.Qty,
			TxnType:     domain.TxnTransfer,
			RefType:     string(domain.RefStockRequest),
			RefID:       requestID,
			ActorUserID: caller.UserID,
		}
		if err := s.InventorySvc.MoveInTx(ctx, tx, out); err != nil {
			return nil, err
		}

		in := portssvc.MoveParams{
			ScopeID:       locked.FromScopeID,
			ProductID:     it.ProductID,
			QtyChange:     it.Qty,
			TxnType:       domain.TxnTransfer,
			RefType:       string(domain.RefStockRequest),
			RefID:         requestID,
			AllowNegative: true,
			ActorUserID:   caller.UserID,
		}
		if err := s.InventorySvc.MoveInTx(ctx, tx, in); err != nil {
			return nil, err
		}
	}

	if total.IsPositive() {
		_, err = s.WalletSvc.TransferInTx(ctx, tx, portssvc.TransferParams{
			FromWalletID: &fromWallet.WalletID,
			ToWalletID:   toWallet.WalletID,
			Amount:       total,
			RefType:      domain.RefStockRequest,
			RefID:        requestID,
			Notes:        fmt.Sprintf("Payment for stock request %s", requestID),
			ActorUserID:  caller.UserID,
		})
		if err != nil {
			return nil, err
		}
	}

	if err := s.StockRequestRepository.MarkFulfilledInTx(ctx, tx, requestID, now, caller.UserID); err != nil {
		return nil, err
	}
	if err := s.StockRequestRepository.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Stock request fulfilled",
		slog.String("request_id", requestID),
		slog.Int("item_count", len(locked.Items)),
		slog.String("total", total.String()),
	)
	return s.StockRequestRepository.FindStockRequestByID(ctx, requestID)
}

// GetByID retrieves a request with its items. The caller must sit at or above
// either side of the request.
func (s *StockRequestService) GetByID(ctx context.Context, requestID string, caller domain.CallerContext) (*domain.StockRequest, error) {
	request, err := s.StockRequestRepository.FindStockRequestByID(ctx, requestID)
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
func (s *StockRequestService) ListAsRequester(ctx context.Context, scopeID string, params dto.ListParams, caller domain.CallerContext) ([]domain.StockRequest, *string, error) {
	if err := s.ScopeSvc.AuthorizeScopeAction(ctx, caller, scopeID); err != nil {
		return nil, nil, err
	}
	return s.StockRequestRepository.ListAsRequester(ctx, scopeID, params.Limit, params.NextToken)
}

// ListAsSupplier lists requests addressed to the given scope.
func (s *StockRequestService) ListAsSupplier(ctx context.Context, scopeID string, params dto.ListParams, caller domain.CallerContext) ([]domain.StockRequest, *string, error) {
	if err := s.ScopeSvc.AuthorizeScopeAction(ctx, caller, scopeID); err != nil {
		return nil, nil, err
	}
	return s.StockRequestRepository.ListAsSupplier(ctx, scopeID, params.Limit, params.NextToken)
}
