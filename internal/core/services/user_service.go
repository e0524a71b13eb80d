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
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	UserRepository  portsrepo.UserRepositoryFacade
	ScopeRepository portsrepo.ScopeRepositoryFacade
}

func NewUserService(userRepo portsrepo.UserRepositoryFacade, scopeRepo portsrepo.ScopeRepositoryFacade) *UserService {
	return &UserService{UserRepository: userRepo, ScopeRepository: scopeRepo}
}

// Register persists a new user with a hashed password.
func (s *UserService) Register(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	scope, err := s.ScopeRepository.FindScopeByID(ctx, req.ScopeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: scope %s not found", apperrors.ErrValidation, req.ScopeID)
		}
		return nil, err
	}
	if !scope.IsActive {
		return nil, fmt.Errorf("%w: scope %s is inactive", apperrors.ErrValidation, req.ScopeID)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, apperrors.NewAppError(500, "failed to hash password", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		PasswordHash: string(hash),
		ScopeID:      req.ScopeID,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "self-registration",
			LastUpdatedAt: now,
			LastUpdatedBy: "self-registration",
		},
	}

	if err := s.UserRepository.SaveUser(ctx, user); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save user", slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("User registered", slog.String("user_id", user.UserID), slog.String("scope_id", user.ScopeID))
	return &user, nil
}

// Authenticate verifies credentials and returns the user. Unknown usernames
// and wrong passwords produce the same error.
func (s *UserService) Authenticate(ctx context.Context, username string, password string) (*domain.User, error) {
	user, err := s.UserRepository.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: account is inactive", apperrors.ErrForbidden)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
	}
	return user, nil
}

// GetUserByID retrieves a user.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.UserRepository.FindUserByID(ctx, userID)
}
