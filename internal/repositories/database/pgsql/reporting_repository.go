package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/savorworks/ledger_backend/internal/apperrors"
	"github.com/savorworks/ledger_backend/internal/core/domain"
	portsrepo "github.com/savorworks/ledger_backend/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// PgxReportingRepository aggregates posted journal activity for reports.
//
// Lines of REVERSED entries are counted alongside POSTED ones: a reversed
// original and its mirror then cancel exactly, instead of the mirror skewing
// every total once the original drops out.
type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository for reporting queries.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxReportingRepository implements portsrepo.ReportingRepositoryFacade
var _ portsrepo.ReportingRepositoryFacade = (*PgxReportingRepository)(nil)

func (r *PgxReportingRepository) collectActivity(ctx context.Context, query string, args ...interface{}) ([]domain.AccountActivity, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query account activity", err)
	}
	defer rows.Close()

	activities := []domain.AccountActivity{}
	for rows.Next() {
		var a domain.AccountActivity
		scanErr := rows.Scan(
			&a.AccountID,
			&a.AccountCode,
			&a.AccountName,
			&a.AccountType,
			&a.NormalBalance,
			&a.IsCurrent,
			&a.IsCostOfGoodsSold,
			&a.TotalDebits,
			&a.TotalCredits,
		)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account activity row", scanErr)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account activity rows", err)
	}
	return activities, nil
}

// GetAccountActivityAsOf returns per-account debit and credit totals over all
// posted lines with entry dates on or before asOf. Every account of the
// organization appears, with zero totals when it has no activity.
func (r *PgxReportingRepository) GetAccountActivityAsOf(ctx context.Context, organizationID string, asOf time.Time) ([]domain.AccountActivity, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.account_type, a.normal_balance, a.is_current, a.is_cogs,
		       COALESCE(SUM(p.debit_amount), 0) AS total_debits,
		       COALESCE(SUM(p.credit_amount), 0) AS total_credits
		FROM accounts a
		LEFT JOIN (
			SELECT l.account_id, l.debit_amount, l.credit_amount
			FROM journal_lines l
			JOIN journal_entries e ON e.entry_id = l.entry_id
			WHERE e.organization_id = $1
			  AND e.status IN ('POSTED', 'REVERSED')
			  AND e.entry_date <= $2
		) p ON p.account_id = a.account_id
		WHERE a.organization_id = $1
		GROUP BY a.account_id, a.code, a.name, a.account_type, a.normal_balance, a.is_current, a.is_cogs
		ORDER BY a.code;
	`
	return r.collectActivity(ctx, query, organizationID, asOf)
}

// GetAccountActivityForPeriod returns per-account totals for revenue and
// expense accounts over the inclusive date interval.
func (r *PgxReportingRepository) GetAccountActivityForPeriod(ctx context.Context, organizationID string, fromDate, toDate time.Time) ([]domain.AccountActivity, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.account_type, a.normal_balance, a.is_current, a.is_cogs,
		       COALESCE(SUM(p.debit_amount), 0) AS total_debits,
		       COALESCE(SUM(p.credit_amount), 0) AS total_credits
		FROM accounts a
		LEFT JOIN (
			SELECT l.account_id, l.debit_amount, l.credit_amount
			FROM journal_lines l
			JOIN journal_entries e ON e.entry_id = l.entry_id
			WHERE e.organization_id = $1
			  AND e.status IN ('POSTED', 'REVERSED')
			  AND e.entry_date >= $2
			  AND e.entry_date <= $3
		) p ON p.account_id = a.account_id
		WHERE a.organization_id = $1 AND a.account_type IN ('REVENUE', 'EXPENSE')
		GROUP BY a.account_id, a.code, a.name, a.account_type, a.normal_balance, a.is_current, a.is_cogs
		ORDER BY a.code;
	`
	return r.collectActivity(ctx, query, organizationID, fromDate, toDate)
}

// GetAccountBalanceAsOf derives one account's balance from posted lines,
// expressed in the account's normal balance terms.
func (r *PgxReportingRepository) GetAccountBalanceAsOf(ctx context.Context, organizationID string, accountID string, asOf time.Time) (decimal.Decimal, error) {
	query := `
		SELECT a.normal_balance,
		       COALESCE(SUM(CASE WHEN e.status IN ('POSTED', 'REVERSED') AND e.entry_date <= $3 THEN l.debit_amount END), 0),
		       COALESCE(SUM(CASE WHEN e.status IN ('POSTED', 'REVERSED') AND e.entry_date <= $3 THEN l.credit_amount END), 0)
		FROM accounts a
		LEFT JOIN journal_lines l ON l.account_id = a.account_id
		LEFT JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE a.account_id = $1 AND a.organization_id = $2
		GROUP BY a.normal_balance;
	`
	var normalBalance domain.NormalBalance
	var totalDebits, totalCredits decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, accountID, organizationID, asOf).Scan(&normalBalance, &totalDebits, &totalCredits)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, apperrors.ErrNotFound
		}
		return decimal.Zero, apperrors.NewAppError(500, "failed to derive balance for account "+accountID, err)
	}

	if normalBalance == domain.DebitNormal {
		return totalDebits.Sub(totalCredits), nil
	}
	return totalCredits.Sub(totalDebits), nil
}
