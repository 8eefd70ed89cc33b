package dto

import (
	"time"

	"github.com/savorworks/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest is the payload for creating a chart-of-accounts node.
// NormalBalance may be omitted, in which case the conventional side for the
// account type is used.
type CreateAccountRequest struct {
	Code              string  `json:"code" binding:"required"`
	Name              string  `json:"name" binding:"required"`
	AccountType       string  `json:"accountType" binding:"required,accounttype"`
	NormalBalance     string  `json:"normalBalance" binding:"omitempty,normalbalance"`
	ParentAccountID   *string `json:"parentAccountID"`
	Description       string  `json:"description"`
	IsCurrent         bool    `json:"isCurrent"`
	IsCostOfGoodsSold bool    `json:"isCostOfGoodsSold"`
}

// UpdateAccountRequest is a partial update; nil fields are left unchanged.
type UpdateAccountRequest struct {
	Name              *string `json:"name"`
	Description       *string `json:"description"`
	AccountType       *string `json:"accountType" binding:"omitempty,accounttype"`
	ParentAccountID   *string `json:"parentAccountID"`
	IsCurrent         *bool   `json:"isCurrent"`
	IsCostOfGoodsSold *bool   `json:"isCostOfGoodsSold"`
}

// AccountResponse is the public representation of an account.
type AccountResponse struct {
	AccountID         string          `json:"accountID"`
	OrganizationID    string          `json:"organizationID"`
	Code              string          `json:"code"`
	Name              string          `json:"name"`
	AccountType       string          `json:"accountType"`
	NormalBalance     string          `json:"normalBalance"`
	ParentAccountID   *string         `json:"parentAccountID,omitempty"`
	Description       string          `json:"description,omitempty"`
	IsCurrent         bool            `json:"isCurrent"`
	IsCostOfGoodsSold bool            `json:"isCostOfGoodsSold"`
	IsActive          bool            `json:"isActive"`
	Balance           decimal.Decimal `json:"balance"`
}

// AccountBalanceResponse is a derived balance as of a date, expressed in the
// account's normal balance terms.
type AccountBalanceResponse struct {
	AccountID string          `json:"accountID"`
	AsOf      time.Time       `json:"asOf"`
	Balance   decimal.Decimal `json:"balance"`
}

// AccountNodeResponse is an account with its children, for hierarchy views.
type AccountNodeResponse struct {
	AccountResponse
	Children []AccountNodeResponse `json:"children"`
}

// ToAccountResponse converts a domain Account to its response DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	resp := AccountResponse{
		AccountID:         a.AccountID,
		OrganizationID:    a.OrganizationID,
		Code:              a.Code,
		Name:              a.Name,
		AccountType:       string(a.AccountType),
		NormalBalance:     string(a.NormalBalance),
		Description:       a.Description,
		IsCurrent:         a.IsCurrent,
		IsCostOfGoodsSold: a.IsCostOfGoodsSold,
		IsActive:          a.IsActive,
		Balance:           a.Balance,
	}
	if a.ParentAccountID != "" {
		parentID := a.ParentAccountID
		resp.ParentAccountID = &parentID
	}
	return resp
}

// ToAccountResponses converts a slice of domain Accounts to response DTOs.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}

// ToAccountNodeResponses converts a hierarchy forest to response DTOs,
// preserving the sibling order produced by the service.
func ToAccountNodeResponses(nodes []*domain.AccountNode) []AccountNodeResponse {
	responses := make([]AccountNodeResponse, len(nodes))
	for i, node := range nodes {
		responses[i] = AccountNodeResponse{
			AccountResponse: ToAccountResponse(&node.Account),
			Children:        ToAccountNodeResponses(node.Children),
		}
	}
	return responses
}
