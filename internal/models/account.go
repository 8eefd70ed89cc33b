package models

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// NormalBalance is the side on which an account naturally increases.
type NormalBalance string

const (
	DebitNormal  NormalBalance = "DEBIT"
	CreditNormal NormalBalance = "CREDIT"
)

// Account represents a chart-of-accounts row.
// Note: ParentAccountID uses string for the nullable self-referencing FK.
type Account struct {
	AccountID         string        `db:"account_id"`
	OrganizationID    string        `db:"organization_id"`
	Code              string        `db:"code"`
	Name              string        `db:"name"`
	AccountType       AccountType   `db:"account_type"`
	NormalBalance     NormalBalance `db:"normal_balance"`
	ParentAccountID   string        `db:"parent_account_id"` // Nullable
	Description       string        `db:"description"`
	IsCurrent         bool          `db:"is_current"`
	IsCostOfGoodsSold bool          `db:"is_cogs"`
	IsActive          bool          `db:"is_active"`
	AuditFields
	Balance decimal.Decimal `db:"balance"` // Cached balance maintained by the posting path
}
