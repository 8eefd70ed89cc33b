package accounting

import (
	"fmt"

	"github.com/savorworks/ledger_backend/internal/apperrors"
	"github.com/savorworks/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceEpsilon is the tolerance for debit/credit equality checks.
// Amounts are decimals, but callers may submit values that only balance to
// the smallest currency unit.
var BalanceEpsilon = decimal.RequireFromString("0.01")

// SignedEffect returns the effect of a journal line on an account's running
// balance. Accounts with a DEBIT normal balance grow with debits; accounts
// with a CREDIT normal balance grow with credits.
func SignedEffect(line domain.JournalLine, normal domain.NormalBalance) (decimal.Decimal, error) {
	switch normal {
	case domain.DebitNormal:
		return line.DebitAmount.Sub(line.CreditAmount), nil
	case domain.CreditNormal:
		return line.CreditAmount.Sub(line.DebitAmount), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown normal balance %q for account %s", normal, line.AccountID)
	}
}

// ValidateLine checks the single-side invariant: exactly one of debit/credit
// is strictly positive and the other is exactly zero.
func ValidateLine(line domain.JournalLine) error {
	if line.DebitAmount.IsNegative() || line.CreditAmount.IsNegative() {
		return fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrValidation, line.LineNumber)
	}
	debit := line.DebitAmount.IsPositive()
	credit := line.CreditAmount.IsPositive()
	if debit && credit {
		return fmt.Errorf("%w: line %d carries both a debit and a credit amount", apperrors.ErrValidation, line.LineNumber)
	}
	if !debit && !credit {
		return fmt.Errorf("%w: line %d carries neither a debit nor a credit amount", apperrors.ErrValidation, line.LineNumber)
	}
	return nil
}

// ValidateEntryLines enforces the double-entry invariant over a full line set:
// at least two valid lines, and total debits equal to total credits within
// BalanceEpsilon.
func ValidateEntryLines(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("%w: a journal entry requires at least two lines", apperrors.ErrValidation)
	}

	totalDebits := decimal.Zero
	totalCredits := decimal.Zero
	for _, line := range lines {
		if err := ValidateLine(line); err != nil {
			return err
		}
		totalDebits = totalDebits.Add(line.DebitAmount)
		totalCredits = totalCredits.Add(line.CreditAmount)
	}

	if totalDebits.Sub(totalCredits).Abs().GreaterThan(BalanceEpsilon) {
		return fmt.Errorf("%w: debits %s do not equal credits %s",
			apperrors.ErrValidation, totalDebits.String(), totalCredits.String())
	}
	return nil
}

// WithinEpsilon reports whether two amounts are equal within BalanceEpsilon.
func WithinEpsilon(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(BalanceEpsilon)
}
