package repositories

import (
	"context"
	"time"

	"github.com/savorworks/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepositoryFacade aggregates posted journal activity for reports.
// All queries include lines of REVERSED entries alongside POSTED ones so a
// reversed original and its mirror cancel instead of skewing the totals.
type ReportingRepositoryFacade interface {
	// GetAccountActivityAsOf returns per-account debit and credit totals over
	// all posted lines with entry dates on or before asOf.
	GetAccountActivityAsOf(ctx context.Context, organizationID string, asOf time.Time) ([]domain.AccountActivity, error)
	// GetAccountActivityForPeriod returns per-account totals for revenue and
	// expense accounts over the inclusive date interval.
	GetAccountActivityForPeriod(ctx context.Context, organizationID string, fromDate, toDate time.Time) ([]domain.AccountActivity, error)
	// GetAccountBalanceAsOf derives one account's balance from posted lines.
	// Returns apperrors.ErrNotFound if the account does not exist.
	GetAccountBalanceAsOf(ctx context.Context, organizationID string, accountID string, asOf time.Time) (decimal.Decimal, error)
}
