package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/savorworks/ledger_backend/internal/apperrors"
	"github.com/savorworks/ledger_backend/internal/core/domain"
	portsrepo "github.com/savorworks/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/savorworks/ledger_backend/internal/core/ports/services"
	"github.com/savorworks/ledger_backend/internal/dto"
)

// organizationServiceImpl implements the OrganizationSvcFacade interface
type organizationServiceImpl struct {
	BaseService
	organizationRepo portsrepo.OrganizationRepositoryFacade
}

// NewOrganizationService creates a new organization service
func NewOrganizationService(repo portsrepo.OrganizationRepositoryFacade) portssvc.OrganizationSvcFacade {
	return &organizationServiceImpl{
		organizationRepo: repo,
	}
}

// Ensure organizationServiceImpl implements the OrganizationSvcFacade interface
var _ portssvc.OrganizationSvcFacade = (*organizationServiceImpl)(nil)

// AuthorizeUserAction verifies the user holds at least requiredRole in the
// organization. Non-members get ErrForbidden rather than ErrNotFound so a
// membership probe cannot distinguish absent organizations.
func (s *organizationServiceImpl) AuthorizeUserAction(ctx context.Context, userID string, organizationID string, requiredRole domain.UserOrganizationRole) error {
	role, err := s.organizationRepo.FindUserOrganizationRole(ctx, userID, organizationID)
	if err != nil {
		return fmt.Errorf("%w: user %s has no access to organization %s", apperrors.ErrForbidden, userID, organizationID)
	}
	if !role.Satisfies(requiredRole) {
		return fmt.Errorf("%w: role %s does not satisfy %s", apperrors.ErrForbidden, role, requiredRole)
	}
	return nil
}

func (s *organizationServiceImpl) CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest, creatorUserID string) (*domain.Organization, error) {
	now := time.Now()
	org := domain.Organization{
		OrganizationID: uuid.NewString(),
		Name:           req.Name,
		Description:    req.Description,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.organizationRepo.SaveOrganization(ctx, org, creatorUserID); err != nil {
		s.LogError(ctx, err, "Failed to save organization", slog.String("organization_id", org.OrganizationID))
		return nil, err
	}

	s.LogInfo(ctx, "Organization created",
		slog.String("organization_id", org.OrganizationID),
		slog.String("name", org.Name))
	return &org, nil
}

func (s *organizationServiceImpl) GetOrganizationByID(ctx context.Context, userID string, organizationID string) (*domain.Organization, error) {
	if err := s.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.organizationRepo.FindOrganizationByID(ctx, organizationID)
}

func (s *organizationServiceImpl) ListUserOrganizations(ctx context.Context, userID string) ([]domain.Organization, error) {
	return s.organizationRepo.ListOrganizationsByUser(ctx, userID)
}

func (s *organizationServiceImpl) AddUser(ctx context.Context, actingUserID string, organizationID string, req dto.AddUserToOrganizationRequest) error {
	if err := s.AuthorizeUserAction(ctx, actingUserID, organizationID, domain.RoleAdmin); err != nil {
		s.LogError(ctx, err, "User not authorized to add members",
			slog.String("user_id", actingUserID),
			slog.String("organization_id", organizationID))
		return err
	}

	now := time.Now()
	membership := domain.UserOrganization{
		UserID:         req.UserID,
		OrganizationID: organizationID,
		Role:           domain.UserOrganizationRole(req.Role),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actingUserID,
		},
	}
	if err := s.organizationRepo.AddUserToOrganization(ctx, membership); err != nil {
		s.LogError(ctx, err, "Failed to add user to organization",
			slog.String("user_id", req.UserID),
			slog.String("organization_id", organizationID))
		return err
	}

	s.LogInfo(ctx, "User added to organization",
		slog.String("user_id", req.UserID),
		slog.String("organization_id", organizationID),
		slog.String("role", req.Role))
	return nil
}
