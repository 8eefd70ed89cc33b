package services

import (
	"context"

	"github.com/savorworks/ledger_backend/internal/core/domain"
	"github.com/savorworks/ledger_backend/internal/dto"
)

// OrganizationAuthorizerSvc checks a user's standing within an organization.
// It is consumed by every service that operates on organization-scoped data.
type OrganizationAuthorizerSvc interface {
	// AuthorizeUserAction verifies the user holds at least requiredRole in
	// the organization. Returns apperrors.ErrForbidden otherwise.
	AuthorizeUserAction(ctx context.Context, userID string, organizationID string, requiredRole domain.UserOrganizationRole) error
}

// OrganizationSvcFacade defines organization management operations.
type OrganizationSvcFacade interface {
	OrganizationAuthorizerSvc
	// CreateOrganization registers a new organization with the creator as ADMIN.
	CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest, creatorUserID string) (*domain.Organization, error)
	// GetOrganizationByID retrieves an organization the user belongs to.
	GetOrganizationByID(ctx context.Context, userID string, organizationID string) (*domain.Organization, error)
	// ListUserOrganizations retrieves every organization the user belongs to.
	ListUserOrganizations(ctx context.Context, userID string) ([]domain.Organization, error)
	// AddUser adds a member; the acting user must be ADMIN.
	AddUser(ctx context.Context, actingUserID string, organizationID string, req dto.AddUserToOrganizationRequest) error
}
