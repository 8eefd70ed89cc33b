package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/savorworks/ledger_backend/internal/apperrors"
	"github.com/savorworks/ledger_backend/internal/core/domain"
	portsrepo "github.com/savorworks/ledger_backend/internal/core/ports/repositories"
	"github.com/savorworks/ledger_backend/internal/models"
	"github.com/savorworks/ledger_backend/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

const accountColumns = `account_id, organization_id, code, name, account_type, normal_balance,
	       parent_account_id, description, is_current, is_cogs, is_active,
	       created_at, created_by, last_updated_at, last_updated_by, balance`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	var parentID sql.NullString
	err := row.Scan(
		&m.AccountID,
		&m.OrganizationID,
		&m.Code,
		&m.Name,
		&m.AccountType,
		&m.NormalBalance,
		&parentID,
		&m.Description,
		&m.IsCurrent,
		&m.IsCostOfGoodsSold,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Balance,
	)
	if err != nil {
		return m, err
	}
	if parentID.Valid {
		m.ParentAccountID = parentID.String
	}
	return m, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	modelAcc := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (account_id, organization_id, code, name, account_type, normal_balance, parent_account_id, description, is_current, is_cogs, is_active, created_at, created_by, last_updated_at, last_updated_by, balance)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	// Use sql.NullString for potentially NULL parent_account_id
	var parentID sql.NullString
	if modelAcc.ParentAccountID != "" {
		parentID = sql.NullString{String: modelAcc.ParentAccountID, Valid: true}
	}

	_, err := r.Pool.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.OrganizationID,
		modelAcc.Code,
		modelAcc.Name,
		modelAcc.AccountType,
		modelAcc.NormalBalance,
		parentID,
		modelAcc.Description,
		modelAcc.IsCurrent,
		modelAcc.IsCostOfGoodsSold,
		modelAcc.IsActive,
		modelAcc.CreatedAt,
		modelAcc.CreatedBy,
		modelAcc.LastUpdatedAt,
		modelAcc.LastUpdatedBy,
		modelAcc.Balance,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // Unique violation
				return fmt.Errorf("%w: account code %s already exists in organization %s", apperrors.ErrDuplicateCode, modelAcc.Code, modelAcc.OrganizationID)
			}
		}
		return fmt.Errorf("failed to save account %s: %w", modelAcc.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves a single account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_id = $1;
	`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account by ID "+accountID, err)
	}

	domainAcc := mapping.ToDomainAccount(m)
	return &domainAcc, nil
}

// FindAccountsByIDs retrieves the accounts matching the given IDs.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_id = ANY($1);
	`
	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts by IDs", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		m, scanErr := scanAccount(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", scanErr)
		}
		accounts[m.AccountID] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}

	return accounts, nil
}

// ListAccounts retrieves a page of accounts for an organization, ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, organizationID string, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE organization_id = $1
		ORDER BY code
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts for organization "+organizationID, err)
	}
	defer rows.Close()

	return collectDomainAccounts(rows)
}

// ListAllAccounts retrieves every account of an organization, ordered by code.
func (r *PgxAccountRepository) ListAllAccounts(ctx context.Context, organizationID string) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE organization_id = $1
		ORDER BY code;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query all accounts for organization "+organizationID, err)
	}
	defer rows.Close()

	return collectDomainAccounts(rows)
}

func collectDomainAccounts(rows pgx.Rows) ([]domain.Account, error) {
	accounts := []domain.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return accounts, nil
}

// UpdateAccount persists changes to an existing account.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	modelAcc := mapping.ToModelAccount(account)

	var parentID sql.NullString
	if modelAcc.ParentAccountID != "" {
		parentID = sql.NullString{String: modelAcc.ParentAccountID, Valid: true}
	}

	query := `
		UPDATE accounts
		SET name = $2,
		    description = $3,
		    account_type = $4,
		    normal_balance = $5,
		    parent_account_id = $6,
		    is_current = $7,
		    is_cogs = $8,
		    last_updated_at = $9,
		    last_updated_by = $10
		WHERE account_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.Name,
		modelAcc.Description,
		modelAcc.AccountType,
		modelAcc.NormalBalance,
		parentID,
		modelAcc.IsCurrent,
		modelAcc.IsCostOfGoodsSold,
		modelAcc.LastUpdatedAt,
		modelAcc.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update account "+modelAcc.AccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("account " + modelAcc.AccountID + " not found for update")
	}
	return nil
}

// DeactivateAccount marks an account inactive.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE,
		    last_updated_at = $2,
		    last_updated_by = $3
		WHERE account_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, accountID, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate account "+accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("account " + accountID + " not found for deactivation")
	}
	return nil
}

// HasPostedLines reports whether any non-draft journal line references the account.
func (r *PgxAccountRepository) HasPostedLines(ctx context.Context, accountID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM journal_lines l
			JOIN journal_entries e ON l.entry_id = e.entry_id
			WHERE l.account_id = $1 AND e.status IN ('POSTED', 'REVERSED')
		);
	`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check posted lines for account "+accountID, err)
	}
	return exists, nil
}

// FindAccountsByIDsForUpdate locks the account rows within the caller's
// transaction and returns them. Rows are locked in a stable order to avoid
// deadlocks between concurrent posts.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_id = ANY($1)
		ORDER BY account_id
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to lock accounts for update", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		m, scanErr := scanAccount(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan locked account row", scanErr)
		}
		accounts[m.AccountID] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating locked account rows", err)
	}

	for _, id := range accountIDs {
		if _, ok := accounts[id]; !ok {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
	}
	return accounts, nil
}

// UpdateAccountBalancesInTx applies signed balance deltas to the locked rows.
func (r *PgxAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET balance = balance + $2,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE account_id = $1;
	`
	batch := &pgx.Batch{}
	for accountID, delta := range balanceChanges {
		batch.Queue(query, accountID, delta, now, userID)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to apply account balance changes", err)
	}
	return nil
}
