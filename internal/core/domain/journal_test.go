package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/savorworks/ledger_backend/internal/apperrors"
	"github.com/savorworks/ledger_backend/internal/core/domain"
)

func TestEntryStatus_Transition(t *testing.T) {
	tests := []struct {
		name    string
		status  domain.EntryStatus
		action  domain.EntryAction
		want    domain.EntryStatus
		wantErr error
	}{
		{
			name:   "post a draft",
			status: domain.Draft,
			action: domain.ActionPost,
			want:   domain.Posted,
		},
		{
			name:    "post a posted entry",
			status:  domain.Posted,
			action:  domain.ActionPost,
			wantErr: apperrors.ErrAlreadyPosted,
		},
		{
			name:    "post a reversed entry",
			status:  domain.Reversed,
			action:  domain.ActionPost,
			wantErr: apperrors.ErrImmutableEntry,
		},
		{
			name:   "reverse a posted entry",
			status: domain.Posted,
			action: domain.ActionReverse,
			want:   domain.Reversed,
		},
		{
			name:    "reverse a draft",
			status:  domain.Draft,
			action:  domain.ActionReverse,
			wantErr: apperrors.ErrConflict,
		},
		{
			name:    "reverse a reversed entry",
			status:  domain.Reversed,
			action:  domain.ActionReverse,
			wantErr: apperrors.ErrConflict,
		},
		{
			name:    "unknown action",
			status:  domain.Draft,
			action:  domain.EntryAction("ARCHIVE"),
			wantErr: apperrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.status.Transition(tt.action)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultNormalBalance(t *testing.T) {
	assert.Equal(t, domain.DebitNormal, domain.DefaultNormalBalance(domain.Asset))
	assert.Equal(t, domain.DebitNormal, domain.DefaultNormalBalance(domain.Expense))
	assert.Equal(t, domain.CreditNormal, domain.DefaultNormalBalance(domain.Liability))
	assert.Equal(t, domain.CreditNormal, domain.DefaultNormalBalance(domain.Equity))
	assert.Equal(t, domain.CreditNormal, domain.DefaultNormalBalance(domain.Revenue))
}

func TestJournalLine_SideHelpers(t *testing.T) {
	debit := domain.JournalLine{DebitAmount: decimal.NewFromInt(75)}
	assert.True(t, debit.IsDebit())
	assert.True(t, debit.Amount().Equal(decimal.NewFromInt(75)))

	credit := domain.JournalLine{CreditAmount: decimal.NewFromInt(75)}
	assert.False(t, credit.IsDebit())
	assert.True(t, credit.Amount().Equal(decimal.NewFromInt(75)))
}
