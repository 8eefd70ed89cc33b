package services

import (
	"context"

	"github.com/savorworks/ledger_backend/internal/core/domain"
	"github.com/savorworks/ledger_backend/internal/dto"
)

// UserSvcFacade defines user account operations.
type UserSvcFacade interface {
	// CreateUser registers a new user with a hashed password.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// AuthSvcFacade defines credential verification and token issuance.
type AuthSvcFacade interface {
	// Login verifies credentials and returns a signed JWT with the user.
	Login(ctx context.Context, req dto.LoginRequest) (string, *domain.User, error)
}
