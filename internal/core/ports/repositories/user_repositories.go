package repositories

import (
	"context"

	"github.com/retailnet/retail_network_app/internal/core/domain"
)

// UserRepositoryFacade defines the minimal user store used by the boundary
// auth layer.
type UserRepositoryFacade interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// FindUserByID retrieves a user by ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername retrieves a user by username.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}
