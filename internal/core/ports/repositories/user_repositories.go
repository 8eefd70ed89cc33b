package repositories

import (
	"context"

	"github.com/savorworks/ledger_backend/internal/core/domain"
)

// UserRepositoryFacade defines persistence for users.
type UserRepositoryFacade interface {
	// SaveUser persists a new user. Returns apperrors.ErrConflict when the
	// username is taken.
	SaveUser(ctx context.Context, user domain.User) error
	// FindUserByID retrieves a user by ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	// FindUserByUsername retrieves a user by username.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}
