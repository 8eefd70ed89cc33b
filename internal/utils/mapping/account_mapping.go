package mapping

import (
	"github.com/savorworks/ledger_backend/internal/core/domain"
	"github.com/savorworks/ledger_backend/internal/models"
)

// ToModelAccount converts a domain Account to a model Account.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:         d.AccountID,
		OrganizationID:    d.OrganizationID,
		Code:              d.Code,
		Name:              d.Name,
		AccountType:       models.AccountType(d.AccountType),
		NormalBalance:     models.NormalBalance(d.NormalBalance),
		ParentAccountID:   d.ParentAccountID,
		Description:       d.Description,
		IsCurrent:         d.IsCurrent,
		IsCostOfGoodsSold: d.IsCostOfGoodsSold,
		IsActive:          d.IsActive,
		AuditFields:       ToModelAuditFields(d.AuditFields),
		Balance:           d.Balance,
	}
}

// ToDomainAccount converts a model Account to a domain Account.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:         m.AccountID,
		OrganizationID:    m.OrganizationID,
		Code:              m.Code,
		Name:              m.Name,
		AccountType:       domain.AccountType(m.AccountType),
		NormalBalance:     domain.NormalBalance(m.NormalBalance),
		ParentAccountID:   m.ParentAccountID,
		Description:       m.Description,
		IsCurrent:         m.IsCurrent,
		IsCostOfGoodsSold: m.IsCostOfGoodsSold,
		IsActive:          m.IsActive,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
		Balance:           m.Balance,
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to domain Accounts.
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
