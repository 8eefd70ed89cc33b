package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/savorworks/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for accounts.
type AccountReader interface {
	// FindAccountByID retrieves a single account by its unique ID.
	// Returns apperrors.ErrNotFound if no account matches.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	// FindAccountsByIDs retrieves accounts matching the given IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
	// ListAccounts retrieves a page of accounts for an organization.
	ListAccounts(ctx context.Context, organizationID string, limit int, offset int) ([]domain.Account, error)
	// ListAllAccounts retrieves every account of an organization, ordered by code.
	ListAllAccounts(ctx context.Context, organizationID string) ([]domain.Account, error)
	// HasPostedLines reports whether any posted journal line references the account.
	HasPostedLines(ctx context.Context, accountID string) (bool, error)
}

// AccountWriter defines write operations for accounts.
type AccountWriter interface {
	// SaveAccount persists a new account.
	// Returns apperrors.ErrDuplicateCode when the (organization, code) pair exists.
	SaveAccount(ctx context.Context, account domain.Account) error
	// UpdateAccount persists changes to an existing account.
	UpdateAccount(ctx context.Context, account domain.Account) error
	// DeactivateAccount marks an account inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountTxOperator defines account operations that participate in a caller
// managed transaction, used during posting and reversal.
type AccountTxOperator interface {
	// FindAccountsByIDsForUpdate locks the account rows and returns them.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)
	// UpdateAccountBalancesInTx applies signed balance deltas to the locked rows.
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account repository capabilities.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTxOperator
}
