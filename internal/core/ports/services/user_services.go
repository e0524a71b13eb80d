package services

import (
	"context"

	"github.com/retailnet/retail_network_app/internal/core/domain"
	"github.com/retailnet/retail_network_app/internal/dto"
)

// UserSvcFacade is the boundary auth surface: it supplies the caller's user
// and scope. Core services never depend on it.
type UserSvcFacade interface {
	// Register persists a new user with a hashed password.
	Register(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)

	// Authenticate verifies credentials and returns the user.
	Authenticate(ctx context.Context, username string, password string) (*domain.User, error)

	// GetUserByID retrieves a user.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}
