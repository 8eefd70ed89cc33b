package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountActivity is an account's aggregated posted debit and credit totals,
// as produced by the reporting queries. Classification flags ride along so
// statement composition never has to re-fetch the account.
type AccountActivity struct {
	AccountID         string
	AccountCode       string
	AccountName       string
	AccountType       AccountType
	NormalBalance     NormalBalance
	IsCurrent         bool
	IsCostOfGoodsSold bool
	TotalDebits       decimal.Decimal
	TotalCredits      decimal.Decimal
}

// NetAmount is the account's net activity expressed in its normal balance
// terms, so revenue and liability accounts report positive under credit
// activity.
func (a AccountActivity) NetAmount() decimal.Decimal {
	if a.NormalBalance == DebitNormal {
		return a.TotalDebits.Sub(a.TotalCredits)
	}
	return a.TotalCredits.Sub(a.TotalDebits)
}

// TrialBalanceRow represents a single account in a trial balance snapshot.
// The net activity is reported on one side only; the other side is zero.
type TrialBalanceRow struct {
	AccountID     string          `json:"accountID"`
	AccountCode   string          `json:"accountCode"`
	AccountName   string          `json:"accountName"`
	AccountType   AccountType     `json:"accountType"`
	DebitBalance  decimal.Decimal `json:"debitBalance"`
	CreditBalance decimal.Decimal `json:"creditBalance"`
}

// TrialBalanceSnapshot is a point-in-time view of every account's balance,
// derived from posted journal lines only.
type TrialBalanceSnapshot struct {
	AsOf         time.Time         `json:"asOf"`
	Rows         []TrialBalanceRow `json:"rows"`
	TotalDebits  decimal.Decimal   `json:"totalDebits"`
	TotalCredits decimal.Decimal   `json:"totalCredits"`
	IsBalanced   bool              `json:"isBalanced"`
}

// AccountAmount represents an account with its net amount for financial statements.
type AccountAmount struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	Name        string          `json:"name"`
	NetAmount   decimal.Decimal `json:"netAmount"`
}

// BalanceSheetSection groups accounts of one type into current and
// non-current buckets, per the account's IsCurrent flag.
type BalanceSheetSection struct {
	Current    []AccountAmount `json:"current"`
	NonCurrent []AccountAmount `json:"nonCurrent"`
	Total      decimal.Decimal `json:"total"`
}

// BalanceSheetReport is a balance sheet as of a specific date.
type BalanceSheetReport struct {
	AsOf             time.Time           `json:"asOf"`
	Assets           BalanceSheetSection `json:"assets"`
	Liabilities      BalanceSheetSection `json:"liabilities"`
	Equity           []AccountAmount     `json:"equity"`
	TotalAssets      decimal.Decimal     `json:"totalAssets"`
	TotalLiabilities decimal.Decimal     `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal     `json:"totalEquity"`
}

// IncomeStatementReport summarizes revenue and expense activity over a period.
// GrossProfit subtracts only the expense accounts flagged as cost of goods sold.
type IncomeStatementReport struct {
	FromDate      time.Time       `json:"fromDate"`
	ToDate        time.Time       `json:"toDate"`
	Revenue       []AccountAmount `json:"revenue"`
	Expenses      []AccountAmount `json:"expenses"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	CostOfGoods   decimal.Decimal `json:"costOfGoods"`
	GrossProfit   decimal.Decimal `json:"grossProfit"`
	NetIncome     decimal.Decimal `json:"netIncome"`
}
