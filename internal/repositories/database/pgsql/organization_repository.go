package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/savorworks/ledger_backend/internal/apperrors"
	"github.com/savorworks/ledger_backend/internal/core/domain"
	portsrepo "github.com/savorworks/ledger_backend/internal/core/ports/repositories"
	"github.com/savorworks/ledger_backend/internal/models"
	"github.com/savorworks/ledger_backend/internal/utils/mapping"
)

type PgxOrganizationRepository struct {
	BaseRepository
}

// newPgxOrganizationRepository creates a new repository for organization data.
func newPgxOrganizationRepository(pool *pgxpool.Pool) portsrepo.OrganizationRepositoryFacade {
	return &PgxOrganizationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxOrganizationRepository implements portsrepo.OrganizationRepositoryFacade
var _ portsrepo.OrganizationRepositoryFacade = (*PgxOrganizationRepository)(nil)

// SaveOrganization persists a new organization and its first ADMIN member in
// one transaction. The journal sequence starts at 1.
func (r *PgxOrganizationRepository) SaveOrganization(ctx context.Context, org domain.Organization, creatorUserID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelOrganization(org)
	orgQuery := `
		INSERT INTO organizations (organization_id, name, description, is_active, next_entry_seq, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, 1, $5, $6, $7, $8);
	`
	_, err = tx.Exec(ctx, orgQuery,
		m.OrganizationID,
		m.Name,
		m.Description,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert organization "+m.OrganizationID, err)
	}

	memberQuery := `
		INSERT INTO user_organizations (user_id, organization_id, role, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = tx.Exec(ctx, memberQuery,
		creatorUserID,
		m.OrganizationID,
		string(domain.RoleAdmin),
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert creator membership for organization "+m.OrganizationID, err)
	}

	return r.Commit(ctx, tx)
}

// FindOrganizationByID retrieves an organization by ID.
func (r *PgxOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	query := `
		SELECT organization_id, name, description, is_active, next_entry_seq, created_at, created_by, last_updated_at, last_updated_by
		FROM organizations
		WHERE organization_id = $1;
	`
	var m models.Organization
	err := r.Pool.QueryRow(ctx, query, organizationID).Scan(
		&m.OrganizationID,
		&m.Name,
		&m.Description,
		&m.IsActive,
		&m.NextEntrySeq,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find organization by ID "+organizationID, err)
	}

	domainOrg := mapping.ToDomainOrganization(m)
	return &domainOrg, nil
}

// ListOrganizationsByUser retrieves every organization a user belongs to.
func (r *PgxOrganizationRepository) ListOrganizationsByUser(ctx context.Context, userID string) ([]domain.Organization, error) {
	query := `
		SELECT o.organization_id, o.name, o.description, o.is_active, o.next_entry_seq, o.created_at, o.created_by, o.last_updated_at, o.last_updated_by
		FROM organizations o
		JOIN user_organizations uo ON uo.organization_id = o.organization_id
		WHERE uo.user_id = $1
		ORDER BY o.name;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query organizations for user "+userID, err)
	}
	defer rows.Close()

	orgs := []domain.Organization{}
	for rows.Next() {
		var m models.Organization
		scanErr := rows.Scan(
			&m.OrganizationID,
			&m.Name,
			&m.Description,
			&m.IsActive,
			&m.NextEntrySeq,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan organization row for user "+userID, scanErr)
		}
		orgs = append(orgs, mapping.ToDomainOrganization(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating organization rows for user "+userID, err)
	}
	return orgs, nil
}

// AddUserToOrganization persists a membership row.
func (r *PgxOrganizationRepository) AddUserToOrganization(ctx context.Context, membership domain.UserOrganization) error {
	query := `
		INSERT INTO user_organizations (user_id, organization_id, role, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		membership.UserID,
		membership.OrganizationID,
		string(membership.Role),
		membership.CreatedAt,
		membership.CreatedBy,
		membership.LastUpdatedAt,
		membership.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: user %s is already a member of organization %s", apperrors.ErrConflict, membership.UserID, membership.OrganizationID)
		}
		return apperrors.NewAppError(500, "failed to add user to organization "+membership.OrganizationID, err)
	}
	return nil
}

// FindUserOrganizationRole retrieves a user's role within an organization.
func (r *PgxOrganizationRepository) FindUserOrganizationRole(ctx context.Context, userID string, organizationID string) (domain.UserOrganizationRole, error) {
	query := `
		SELECT role
		FROM user_organizations
		WHERE user_id = $1 AND organization_id = $2;
	`
	var role string
	err := r.Pool.QueryRow(ctx, query, userID, organizationID).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", apperrors.NewAppError(500, "failed to find role for user "+userID+" in organization "+organizationID, err)
	}
	return domain.UserOrganizationRole(role), nil
}
