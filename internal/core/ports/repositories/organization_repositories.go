package repositories

import (
	"context"

	"github.com/savorworks/ledger_backend/internal/core/domain"
)

// OrganizationRepositoryFacade defines persistence for organizations and
// user memberships.
type OrganizationRepositoryFacade interface {
	// SaveOrganization persists a new organization and its first ADMIN member
	// in one transaction.
	SaveOrganization(ctx context.Context, org domain.Organization, creatorUserID string) error
	// FindOrganizationByID retrieves an organization by ID.
	FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)
	// ListOrganizationsByUser retrieves every organization a user belongs to.
	ListOrganizationsByUser(ctx context.Context, userID string) ([]domain.Organization, error)
	// AddUserToOrganization persists a membership row.
	AddUserToOrganization(ctx context.Context, membership domain.UserOrganization) error
	// FindUserOrganizationRole retrieves a user's role within an organization.
	// Returns apperrors.ErrNotFound if the user is not a member.
	FindUserOrganizationRole(ctx context.Context, userID string, organizationID string) (domain.UserOrganizationRole, error)
}
