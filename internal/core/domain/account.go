package domain

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

// DefaultNormalBalance returns the conventional normal balance for an account type.
// Assets and expenses increase on the debit side; everything else on the credit side.
func DefaultNormalBalance(t AccountType) NormalBalance {
	if t == Asset || t == Expense {
		return DebitNormal
	}
	return CreditNormal
}

// Account represents a node of an organization's chart of accounts.
// Balance is a cache maintained by the posting path; the ground truth is
// always the sum of posted journal lines.
type Account struct {
	AccountID         string          `json:"accountID"`      // Primary Key (UUID)
	OrganizationID    string          `json:"organizationID"` // FK -> organizations.organization_id (NON-NULL)
	Code              string          `json:"code"`           // Unique per organization, e.g. "1001"
	Name              string          `json:"name"`
	AccountType       AccountType     `json:"accountType"`
	NormalBalance     NormalBalance   `json:"normalBalance"`
	ParentAccountID   string          `json:"parentAccountID"` // Nullable FK -> accounts.account_id (self-referencing)
	Description       string          `json:"description"`
	IsCurrent         bool            `json:"isCurrent"`         // Balance sheet current/non-current classification
	IsCostOfGoodsSold bool            `json:"isCostOfGoodsSold"` // Gross profit classification for EXPENSE accounts
	IsActive          bool            `json:"isActive"`
	AuditFields
	Balance decimal.Decimal `json:"balance"`
}

// AccountNode is an account with its children resolved, for hierarchy views.
type AccountNode struct {
	Account
	Children []*AccountNode `json:"children"`
}
