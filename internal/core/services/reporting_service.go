package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/savorworks/ledger_backend/internal/apperrors"
	"github.com/savorworks/ledger_backend/internal/core/domain"
	portsrepo "github.com/savorworks/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/savorworks/ledger_backend/internal/core/ports/services"
	"github.com/savorworks/ledger_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// reportingServiceImpl implements the ReportingSvcFacade interface
type reportingServiceImpl struct {
	BaseService
	reportingRepo portsrepo.ReportingRepositoryFacade
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingServiceImpl)

// WithReportingOrganizationAuthorizer adds the organization authorizer dependency
func WithReportingOrganizationAuthorizer(authorizer portssvc.OrganizationAuthorizerSvc) ReportingServiceOption {
	return func(s *reportingServiceImpl) {
		s.OrganizationAuthorizer = authorizer
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repo portsrepo.ReportingRepositoryFacade, options ...ReportingServiceOption) portssvc.ReportingSvcFacade {
	svc := &reportingServiceImpl{
		reportingRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure reportingServiceImpl implements the ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingServiceImpl)(nil)

// GenerateTrialBalance produces the trial balance as of a date. Each account's
// net activity lands on one side; accounts with no activity are skipped.
// Unequal totals mean corrupted ledger data, not a bad request.
func (s *reportingServiceImpl) GenerateTrialBalance(ctx context.Context, userID string, organizationID string, asOf time.Time) (*domain.TrialBalanceSnapshot, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	activities, err := s.reportingRepo.GetAccountActivityAsOf(ctx, organizationID, asOf)
	if err != nil {
		return nil, err
	}

	rows := []domain.TrialBalanceRow{}
	totalDebits := decimal.Zero
	totalCredits := decimal.Zero
	for _, a := range activities {
		if a.TotalDebits.IsZero() && a.TotalCredits.IsZero() {
			continue
		}
		row := domain.TrialBalanceRow{
			AccountID:   a.AccountID,
			AccountCode: a.AccountCode,
			AccountName: a.AccountName,
			AccountType: a.AccountType,
		}
		// Net in debit terms decides which column carries the balance.
		net := a.TotalDebits.Sub(a.TotalCredits)
		if net.IsNegative() {
			row.CreditBalance = net.Neg()
			totalCredits = totalCredits.Add(row.CreditBalance)
		} else {
			row.DebitBalance = net
			totalDebits = totalDebits.Add(row.DebitBalance)
		}
		rows = append(rows, row)
	}

	snapshot := &domain.TrialBalanceSnapshot{
		AsOf:         asOf,
		Rows:         rows,
		TotalDebits:  totalDebits,
		TotalCredits: totalCredits,
		IsBalanced:   accounting.WithinEpsilon(totalDebits, totalCredits),
	}
	if !snapshot.IsBalanced {
		s.LogError(ctx, apperrors.ErrDataIntegrity, "Trial balance does not close",
			slog.String("organization_id", organizationID),
			slog.String("total_debits", totalDebits.String()),
			slog.String("total_credits", totalCredits.String()))
		return nil, fmt.Errorf("%w: trial balance debits %s do not equal credits %s",
			apperrors.ErrDataIntegrity, totalDebits.String(), totalCredits.String())
	}
	return snapshot, nil
}

// GenerateBalanceSheet produces the balance sheet as of a date. Accumulated
// revenue and expense activity is folded into equity as retained earnings so
// the accounting identity holds without a period close.
func (s *reportingServiceImpl) GenerateBalanceSheet(ctx context.Context, userID string, organizationID string, asOf time.Time) (*domain.BalanceSheetReport, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	activities, err := s.reportingRepo.GetAccountActivityAsOf(ctx, organizationID, asOf)
	if err != nil {
		return nil, err
	}

	report := &domain.BalanceSheetReport{
		AsOf:   asOf,
		Equity: []domain.AccountAmount{},
	}
	report.Assets.Current = []domain.AccountAmount{}
	report.Assets.NonCurrent = []domain.AccountAmount{}
	report.Liabilities.Current = []domain.AccountAmount{}
	report.Liabilities.NonCurrent = []domain.AccountAmount{}

	retainedEarnings := decimal.Zero
	for _, a := range activities {
		net := a.NetAmount()
		if net.IsZero() {
			continue
		}
		amount := domain.AccountAmount{
			AccountID:   a.AccountID,
			AccountCode: a.AccountCode,
			Name:        a.AccountName,
			NetAmount:   net,
		}

		switch a.AccountType {
		case domain.Asset:
			if a.IsCurrent {
				report.Assets.Current = append(report.Assets.Current, amount)
			} else {
				report.Assets.NonCurrent = append(report.Assets.NonCurrent, amount)
			}
			report.Assets.Total = report.Assets.Total.Add(net)
		case domain.Liability:
			if a.IsCurrent {
				report.Liabilities.Current = append(report.Liabilities.Current, amount)
			} else {
				report.Liabilities.NonCurrent = append(report.Liabilities.NonCurrent, amount)
			}
			report.Liabilities.Total = report.Liabilities.Total.Add(net)
		case domain.Equity:
			report.Equity = append(report.Equity, amount)
			report.TotalEquity = report.TotalEquity.Add(net)
		case domain.Revenue:
			retainedEarnings = retainedEarnings.Add(net)
		case domain.Expense:
			retainedEarnings = retainedEarnings.Sub(net)
		}
	}

	if !retainedEarnings.IsZero() {
		report.Equity = append(report.Equity, domain.AccountAmount{
			Name:      "Retained Earnings",
			NetAmount: retainedEarnings,
		})
		report.TotalEquity = report.TotalEquity.Add(retainedEarnings)
	}

	report.TotalAssets = report.Assets.Total
	report.TotalLiabilities = report.Liabilities.Total

	if !accounting.WithinEpsilon(report.TotalAssets, report.TotalLiabilities.Add(report.TotalEquity)) {
		s.LogError(ctx, apperrors.ErrDataIntegrity, "Balance sheet identity violated",
			slog.String("organization_id", organizationID),
			slog.String("total_assets", report.TotalAssets.String()),
			slog.String("total_liabilities", report.TotalLiabilities.String()),
			slog.String("total_equity", report.TotalEquity.String()))
		return nil, fmt.Errorf("%w: assets %s do not equal liabilities %s plus equity %s",
			apperrors.ErrDataIntegrity, report.TotalAssets.String(), report.TotalLiabilities.String(), report.TotalEquity.String())
	}
	return report, nil
}

// GenerateIncomeStatement produces the income statement over the inclusive
// date interval. Gross profit subtracts only cost-of-goods-sold expenses.
func (s *reportingServiceImpl) GenerateIncomeStatement(ctx context.Context, userID string, organizationID string, fromDate, toDate time.Time) (*domain.IncomeStatementReport, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if toDate.Before(fromDate) {
		return nil, fmt.Errorf("%w: toDate precedes fromDate", apperrors.ErrValidation)
	}

	activities, err := s.reportingRepo.GetAccountActivityForPeriod(ctx, organizationID, fromDate, toDate)
	if err != nil {
		return nil, err
	}

	report := &domain.IncomeStatementReport{
		FromDate: fromDate,
		ToDate:   toDate,
		Revenue:  []domain.AccountAmount{},
		Expenses: []domain.AccountAmount{},
	}
	for _, a := range activities {
		net := a.NetAmount()
		if net.IsZero() {
			continue
		}
		amount := domain.AccountAmount{
			AccountID:   a.AccountID,
			AccountCode: a.AccountCode,
			Name:        a.AccountName,
			NetAmount:   net,
		}
		switch a.AccountType {
		case domain.Revenue:
			report.Revenue = append(report.Revenue, amount)
			report.TotalRevenue = report.TotalRevenue.Add(net)
		case domain.Expense:
			report.Expenses = append(report.Expenses, amount)
			report.TotalExpenses = report.TotalExpenses.Add(net)
			if a.IsCostOfGoodsSold {
				report.CostOfGoods = report.CostOfGoods.Add(net)
			}
		}
	}

	report.GrossProfit = report.TotalRevenue.Sub(report.CostOfGoods)
	report.NetIncome = report.TotalRevenue.Sub(report.TotalExpenses)
	return report, nil
}
