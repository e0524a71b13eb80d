package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/retailnet/retail_network_app/internal/apperrors"
	"github.com/retailnet/retail_network_app/internal/core/domain"
	portsrepo "github.com/retailnet/retail_network_app/internal/core/ports/repositories"
	"github.com/retailnet/retail_network_app/internal/dto"
	"github.com/retailnet/retail_network_app/internal/middleware"
)

type ScopeService struct {
	ScopeRepository portsrepo.ScopeRepositoryFacade
}

func NewScopeService(repo portsrepo.ScopeRepositoryFacade) *ScopeService {
	return &ScopeService{ScopeRepository: repo}
}

// CreateScope validates the level chain and persists a new scope node.
func (s *ScopeService) CreateScope(ctx context.Context, req dto.CreateScopeRequest, caller domain.CallerContext) (*domain.ScopeNode, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	level := domain.ScopeLevel(req.Level)
	now := time.Now().UTC()

	if level == domain.LevelCompany {
		if req.ParentID != nil {
			return nil, fmt.Errorf("%w: a COMPANY scope cannot have a parent", apperrors.ErrValidation)
		}
		if _, err := s.ScopeRepository.FindCompanyRoot(ctx, req.CompanyID); err == nil {
			return nil, fmt.Errorf("%w: company %s already has a root scope", apperrors.ErrDuplicate, req.CompanyID)
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	} else {
		if req.ParentID == nil {
			return nil, fmt.Errorf("%w: a %s scope requires a parent", apperrors.ErrValidation, level)
		}
		parent, err := s.ScopeRepository.FindScopeByID(ctx, *req.ParentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent scope %s not found", apperrors.ErrValidation, *req.ParentID)
			}
			return nil, err
		}
		if !parent.IsActive {
			return nil, fmt.Errorf("%w: parent scope %s is inactive", apperrors.ErrValidation, parent.ScopeID)
		}
		if parent.CompanyID != req.CompanyID {
			return nil, fmt.Errorf("%w: parent scope belongs to a different company", apperrors.ErrValidation)
		}
		if !domain.IsValidChildLevel(parent.Level, level) {
			return nil, fmt.Errorf("%w: a %s scope cannot be created under a %s scope", apperrors.ErrInvalidHierarchy, level, parent.Level)
		}
		if err := s.AuthorizeScopeAction(ctx, caller, parent.ScopeID); err != nil {
			return nil, err
		}
	}

	scope := domain.ScopeNode{
		ScopeID:   uuid.NewString(),
		CompanyID: req.CompanyID,
		Name:      req.Name,
		Level:     level,
		ParentID:  req.ParentID,
		IsActive:  true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     caller.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: caller.UserID,
		},
	}

	if err := s.ScopeRepository.SaveScope(ctx, scope); err != nil {
		logger.Error("Failed to save scope", slog.String("error", err.Error()), slog.String("scope_id", scope.ScopeID))
		return nil, err
	}

	logger.Info("Scope created", slog.String("scope_id", scope.ScopeID), slog.String("level", string(level)))
	return &scope, nil
}

// GetScopeByID retrieves a scope node.
func (s *ScopeService) GetScopeByID(ctx context.Context, scopeID string) (*domain.ScopeNode, error) {
	scope, err := s.ScopeRepository.FindScopeByID(ctx, scopeID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find scope", slog.String("error", err.Error()), slog.String("scope_id", scopeID))
		}
		return nil, err
	}
	return scope, nil
}

// ListChildren retrieves the direct children of a scope.
func (s *ScopeService) ListChildren(ctx context.Context, scopeID string) ([]domain.ScopeNode, error) {
	if _, err := s.ScopeRepository.FindScopeByID(ctx, scopeID); err != nil {
		return nil, err
	}
	return s.ScopeRepository.ListChildren(ctx, scopeID)
}

// IsAncestorOrSelf reports whether candidateAncestorID lies on the path from
// scopeID up to its company root, inclusive of scopeID itself.
func (s *ScopeService) IsAncestorOrSelf(ctx context.Context, candidateAncestorID string, scopeID string) (bool, error) {
	chain, err := s.ScopeRepository.FindAncestorIDs(ctx, scopeID)
	if err != nil {
		return false, err
	}
	for _, id := range chain {
		if id == candidateAncestorID {
			return true, nil
		}
	}
	return false, nil
}

// AuthorizeScopeAction returns nil when the caller's scope is targetScopeID
// itself or one of its ancestors.
func (s *ScopeService) AuthorizeScopeAction(ctx context.Context, caller domain.CallerContext, targetScopeID string) error {
	ok, err := s.IsAncestorOrSelf(ctx, caller.ScopeID, targetScopeID)
	if err != nil {
		return err
	}
	if !ok {
		middleware.GetLoggerFromCtx(ctx).Warn("Scope action denied",
			slog.String("caller_scope_id", caller.ScopeID),
			slog.String("target_scope_id", targetScopeID),
		)
		return fmt.Errorf("%w: scope %s is outside the caller's subtree", apperrors.ErrForbidden, targetScopeID)
	}
	return nil
}

// ValidateRequestPair returns nil when fromScopeID may raise a request
// against toScopeID: both scopes active, to an ancestor of from, and the
// level pairing allowed.
func (s *ScopeService) ValidateRequestPair(ctx context.Context, fromScopeID string, toScopeID string) error {
	if fromScopeID == toScopeID {
		return fmt.Errorf("%w: a scope cannot raise a request against itself", apperrors.ErrInvalidHierarchy)
	}

	scopes, err := s.ScopeRepository.FindScopesByIDs(ctx, []string{fromScopeID, toScopeID})
	if err != nil {
		return err
	}
	from, ok := scopes[fromScopeID]
	if !ok {
		return fmt.Errorf("%w: scope %s not found", apperrors.ErrNotFound, fromScopeID)
	}
	to, ok := scopes[toScopeID]
	if !ok {
		return fmt.Errorf("%w: scope %s not found", apperrors.ErrNotFound, toScopeID)
	}
	if !from.IsActive || !to.IsActive {
		return fmt.Errorf("%w: both scopes must be active", apperrors.ErrValidation)
	}

	if !domain.IsValidRequestPair(from.Level, to.Level) {
		return fmt.Errorf("%w: a %s scope cannot request from a %s scope", apperrors.ErrInvalidHierarchy, from.Level, to.Level)
	}

	chain, err := s.ScopeRepository.FindAncestorIDs(ctx, fromScopeID)
	if err != nil {
		return err
	}
	for _, id := range chain[1:] {
		if id == toScopeID {
			return nil
		}
	}
	return fmt.Errorf("%w: scope %s is not an ancestor of scope %s", apperrors.ErrInvalidHierarchy, toScopeID, fromScopeID)
}

// DeactivateScope soft-deletes a scope. Refused while active children exist.
func (s *ScopeService) DeactivateScope(ctx context.Context, scopeID string, caller domain.CallerContext) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeScopeAction(ctx, caller, scopeID); err != nil {
		return err
	}

	count, err := s.ScopeRepository.CountActiveChildren(ctx, scopeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: scope %s still has %d active children", apperrors.ErrValidation, scopeID, count)
	}

	if err := s.ScopeRepository.DeactivateScope(ctx, scopeID, caller.UserID, time.Now().UTC()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to deactivate scope", slog.String("error", err.Error()), slog.String("scope_id", scopeID))
		}
		return err
	}

	logger.Info("Scope deactivated", slog.String("scope_id", scopeID))
	return nil
}
