package dto

import (
	"time"

	"github.com/savorworks/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceRowResponse is one account row in the trial balance.
type TrialBalanceRowResponse struct {
	AccountID     string          `json:"accountID"`
	AccountCode   string          `json:"accountCode"`
	AccountName   string          `json:"accountName"`
	AccountType   string          `json:"accountType"`
	DebitBalance  decimal.Decimal `json:"debitBalance"`
	CreditBalance decimal.Decimal `json:"creditBalance"`
}

// TrialBalanceResponse is the trial balance report payload.
type TrialBalanceResponse struct {
	AsOf         time.Time                 `json:"asOf"`
	Rows         []TrialBalanceRowResponse `json:"rows"`
	TotalDebits  decimal.Decimal           `json:"totalDebits"`
	TotalCredits decimal.Decimal           `json:"totalCredits"`
	IsBalanced   bool                      `json:"isBalanced"`
}

// AccountAmountResponse is an account with its net amount on a statement.
type AccountAmountResponse struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	Name        string          `json:"name"`
	NetAmount   decimal.Decimal `json:"netAmount"`
}

// BalanceSheetSectionResponse splits one statement side into current and
// non-current groups.
type BalanceSheetSectionResponse struct {
	Current    []AccountAmountResponse `json:"current"`
	NonCurrent []AccountAmountResponse `json:"nonCurrent"`
	Total      decimal.Decimal         `json:"total"`
}

// BalanceSheetResponse is the balance sheet report payload.
type BalanceSheetResponse struct {
	AsOf             time.Time                   `json:"asOf"`
	Assets           BalanceSheetSectionResponse `json:"assets"`
	Liabilities      BalanceSheetSectionResponse `json:"liabilities"`
	Equity           []AccountAmountResponse     `json:"equity"`
	TotalAssets      decimal.Decimal             `json:"totalAssets"`
	TotalLiabilities decimal.Decimal             `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal             `json:"totalEquity"`
}

// IncomeStatementResponse is the income statement report payload.
type IncomeStatementResponse struct {
	FromDate      time.Time               `json:"fromDate"`
	ToDate        time.Time               `json:"toDate"`
	Revenue       []AccountAmountResponse `json:"revenue"`
	Expenses      []AccountAmountResponse `json:"expenses"`
	TotalRevenue  decimal.Decimal         `json:"totalRevenue"`
	TotalExpenses decimal.Decimal         `json:"totalExpenses"`
	CostOfGoods   decimal.Decimal         `json:"costOfGoods"`
	GrossProfit   decimal.Decimal         `json:"grossProfit"`
	NetIncome     decimal.Decimal         `json:"netIncome"`
}

func toAccountAmountResponses(amounts []domain.AccountAmount) []AccountAmountResponse {
	responses := make([]AccountAmountResponse, len(amounts))
	for i, a := range amounts {
		responses[i] = AccountAmountResponse{
			AccountID:   a.AccountID,
			AccountCode: a.AccountCode,
			Name:        a.Name,
			NetAmount:   a.NetAmount,
		}
	}
	return responses
}

func toBalanceSheetSectionResponse(s domain.BalanceSheetSection) BalanceSheetSectionResponse {
	return BalanceSheetSectionResponse{
		Current:    toAccountAmountResponses(s.Current),
		NonCurrent: toAccountAmountResponses(s.NonCurrent),
		Total:      s.Total,
	}
}

// ToTrialBalanceResponse converts a domain snapshot to its response DTO.
func ToTrialBalanceResponse(tb *domain.TrialBalanceSnapshot) TrialBalanceResponse {
	rows := make([]TrialBalanceRowResponse, len(tb.Rows))
	for i, r := range tb.Rows {
		rows[i] = TrialBalanceRowResponse{
			AccountID:     r.AccountID,
			AccountCode:   r.AccountCode,
			AccountName:   r.AccountName,
			AccountType:   string(r.AccountType),
			DebitBalance:  r.DebitBalance,
			CreditBalance: r.CreditBalance,
		}
	}
	return TrialBalanceResponse{
		AsOf:         tb.AsOf,
		Rows:         rows,
		TotalDebits:  tb.TotalDebits,
		TotalCredits: tb.TotalCredits,
		IsBalanced:   tb.IsBalanced,
	}
}

// ToBalanceSheetResponse converts a domain balance sheet to its response DTO.
func ToBalanceSheetResponse(bs *domain.BalanceSheetReport) BalanceSheetResponse {
	return BalanceSheetResponse{
		AsOf:             bs.AsOf,
		Assets:           toBalanceSheetSectionResponse(bs.Assets),
		Liabilities:      toBalanceSheetSectionResponse(bs.Liabilities),
		Equity:           toAccountAmountResponses(bs.Equity),
		TotalAssets:      bs.TotalAssets,
		TotalLiabilities: bs.TotalLiabilities,
		TotalEquity:      bs.TotalEquity,
	}
}

// ToIncomeStatementResponse converts a domain income statement to its response DTO.
func ToIncomeStatementResponse(is *domain.IncomeStatementReport) IncomeStatementResponse {
	return IncomeStatementResponse{
		FromDate:      is.FromDate,
		ToDate:        is.ToDate,
		Revenue:       toAccountAmountResponses(is.Revenue),
		Expenses:      toAccountAmountResponses(is.Expenses),
		TotalRevenue:  is.TotalRevenue,
		TotalExpenses: is.TotalExpenses,
		CostOfGoods:   is.CostOfGoods,
		GrossProfit:   is.GrossProfit,
		NetIncome:     is.NetIncome,
	}
}
