package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/savorworks/ledger_backend/internal/apperrors"
	"github.com/savorworks/ledger_backend/internal/core/domain"
	portsrepo "github.com/savorworks/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/savorworks/ledger_backend/internal/core/ports/services"
	"github.com/savorworks/ledger_backend/internal/dto"
	"github.com/savorworks/ledger_backend/internal/utils"
)

// userServiceImpl implements the UserSvcFacade and AuthSvcFacade interfaces
type userServiceImpl struct {
	BaseService
	userRepo  portsrepo.UserRepositoryFacade
	jwtSecret string
	jwtIssuer string
	jwtExpiry time.Duration
}

// NewUserService creates a new user service
func NewUserService(repo portsrepo.UserRepositoryFacade, jwtSecret, jwtIssuer string, jwtExpiry time.Duration) *userServiceImpl {
	return &userServiceImpl{
		userRepo:  repo,
		jwtSecret: jwtSecret,
		jwtIssuer: jwtIssuer,
		jwtExpiry: jwtExpiry,
	}
}

// Ensure userServiceImpl implements both facades
var (
	_ portssvc.UserSvcFacade = (*userServiceImpl)(nil)
	_ portssvc.AuthSvcFacade = (*userServiceImpl)(nil)
)

func (s *userServiceImpl) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, apperrors.NewAppError(500, "failed to hash password", err)
	}

	now := time.Now()
	userID := uuid.NewString()
	user := domain.User{
		UserID:       userID,
		Username:     req.Username,
		Name:         req.Name,
		PasswordHash: hash,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user", slog.String("user_id", user.UserID))
		return nil, err
	}

	s.LogInfo(ctx, "User created", slog.String("user_id", user.UserID))
	return &user, nil
}

func (s *userServiceImpl) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// Login verifies credentials and returns a signed JWT with the user.
// A missing user and a wrong password produce the same error.
func (s *userServiceImpl) Login(ctx context.Context, req dto.LoginRequest) (string, *domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
		}
		return "", nil, err
	}
	if !user.IsActive {
		return "", nil, fmt.Errorf("%w: user is inactive", apperrors.ErrForbidden)
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return "", nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
	}

	token, err := utils.GenerateJWT(user.UserID, s.jwtSecret, s.jwtIssuer, s.jwtExpiry)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate token", slog.String("user_id", user.UserID))
		return "", nil, apperrors.NewAppError(500, "failed to generate token", err)
	}

	s.LogInfo(ctx, "User logged in", slog.String("user_id", user.UserID))
	return token, user, nil
}
