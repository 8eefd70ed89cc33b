package services

import (
	"context"
	"time"

	"github.com/savorworks/ledger_backend/internal/core/domain"
	"github.com/savorworks/ledger_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountSvcFacade defines the chart-of-accounts operations.
type AccountSvcFacade interface {
	// CreateAccount registers a new account under an organization.
	CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)
	// GetAccountByID retrieves a single account, scoped to the organization.
	GetAccountByID(ctx context.Context, organizationID string, accountID string) (*domain.Account, error)
	// GetAccountByIDs retrieves accounts by ID, scoped to the organization.
	GetAccountByIDs(ctx context.Context, organizationID string, accountIDs []string) (map[string]domain.Account, error)
	// ListAccounts retrieves a page of the organization's accounts.
	ListAccounts(ctx context.Context, organizationID string, limit int, offset int) ([]domain.Account, error)
	// GetAccountHierarchy returns the chart of accounts as a forest, children
	// and roots sorted by code.
	GetAccountHierarchy(ctx context.Context, organizationID string) ([]*domain.AccountNode, error)
	// UpdateAccount applies a partial update to an account.
	UpdateAccount(ctx context.Context, organizationID string, accountID string, req dto.UpdateAccountRequest, updaterUserID string) (*domain.Account, error)
	// DeactivateAccount marks an account inactive; its balance must be zero.
	DeactivateAccount(ctx context.Context, organizationID string, accountID string, userID string) error
	// ResolveBalance derives an account's balance from posted lines as of a
	// date, expressed in the account's normal balance terms.
	ResolveBalance(ctx context.Context, organizationID string, accountID string, asOf time.Time) (decimal.Decimal, error)
}
