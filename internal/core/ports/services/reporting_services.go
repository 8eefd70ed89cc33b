package services

import (
	"context"
	"time"

	"github.com/savorworks/ledger_backend/internal/core/domain"
)

// ReportingSvcFacade defines the financial report operations. Every report
// requires at least READ_ONLY membership in the organization.
type ReportingSvcFacade interface {
	// GenerateTrialBalance produces the trial balance as of a date.
	GenerateTrialBalance(ctx context.Context, userID string, organizationID string, asOf time.Time) (*domain.TrialBalanceSnapshot, error)
	// GenerateBalanceSheet produces the balance sheet as of a date.
	GenerateBalanceSheet(ctx context.Context, userID string, organizationID string, asOf time.Time) (*domain.BalanceSheetReport, error)
	// GenerateIncomeStatement produces the income statement over the
	// inclusive date interval.
	GenerateIncomeStatement(ctx context.Context, userID string, organizationID string, fromDate, toDate time.Time) (*domain.IncomeStatementReport, error)
}
