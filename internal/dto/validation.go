package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/savorworks/ledger_backend/internal/core/domain"
)

// RegisterCustomValidators installs the ledger enum validators on gin's
// binding engine. Call once at startup.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("accounttype", validateAccountType); err != nil {
		return err
	}
	return v.RegisterValidation("normalbalance", validateNormalBalance)
}

func validateAccountType(fl validator.FieldLevel) bool {
	switch domain.AccountType(fl.Field().String()) {
	case domain.Asset, domain.Liability, domain.Equity, domain.Revenue, domain.Expense:
		return true
	}
	return false
}

func validateNormalBalance(fl validator.FieldLevel) bool {
	switch domain.NormalBalance(fl.Field().String()) {
	case domain.DebitNormal, domain.CreditNormal:
		return true
	}
	return false
}
