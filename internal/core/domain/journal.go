package domain

import (
	"fmt"
	"time"

	"github.com/savorworks/ledger_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	Draft    EntryStatus = "DRAFT"
	Posted   EntryStatus = "POSTED"
	Reversed EntryStatus = "REVERSED"
)

// EntryAction is a state machine input for a journal entry.
type EntryAction string

const (
	ActionPost    EntryAction = "POST"
	ActionReverse EntryAction = "REVERSE"
)

// Transition is the only way a journal entry's status may change.
// DRAFT -> POSTED -> REVERSED; a draft cannot be reversed directly and a
// posted entry is terminal except for reversal.
func (s EntryStatus) Transition(action EntryAction) (EntryStatus, error) {
	switch action {
	case ActionPost:
		switch s {
		case Draft:
			return Posted, nil
		case Posted:
			return s, apperrors.ErrAlreadyPosted
		default:
			return s, fmt.Errorf("%w: cannot post a %s entry", apperrors.ErrImmutableEntry, s)
		}
	case ActionReverse:
		if s == Posted {
			return Reversed, nil
		}
		return s, fmt.Errorf("%w: only a posted entry can be reversed, status is %s", apperrors.ErrConflict, s)
	default:
		return s, fmt.Errorf("%w: unknown entry action %q", apperrors.ErrValidation, action)
	}
}

// JournalEntry represents a single, balanced financial event composed of
// multiple journal lines.
type JournalEntry struct {
	EntryID        string      `json:"entryID"`        // Primary Key (UUID)
	OrganizationID string      `json:"organizationID"` // FK -> organizations.organization_id (NON-NULL)
	EntryNumber    string      `json:"entryNumber"`    // Unique human-readable number per organization, e.g. JE-000042
	EntryDate      time.Time   `json:"entryDate"`      // Date the event occurred
	Description    string      `json:"description"`    // Required, non-empty
	Reference      string      `json:"reference"`      // Optional external reference
	Status         EntryStatus `json:"status"`

	// Posting approval, set when the entry transitions to POSTED.
	ApprovedBy *string    `json:"approvedBy,omitempty"`
	ApprovedAt *time.Time `json:"approvedAt,omitempty"`

	// Reversal links. OriginalEntryID is set on the reversing entry;
	// ReversingEntryID is set on the reversed original.
	OriginalEntryID  *string `json:"originalEntryID,omitempty"`
	ReversingEntryID *string `json:"reversingEntryID,omitempty"`

	Lines []JournalLine `json:"lines,omitempty"`
	AuditFields
}

// JournalLine is a single line item within a journal entry, affecting one account.
// Exactly one of DebitAmount/CreditAmount is strictly positive; the other is zero.
type JournalLine struct {
	LineID       string          `json:"lineID"`    // Primary Key (UUID)
	EntryID      string          `json:"entryID"`   // FK -> JournalEntry.EntryID (Not Null)
	AccountID    string          `json:"accountID"` // FK -> Account.AccountID (Not Null)
	LineNumber   int             `json:"lineNumber"`
	Description  string          `json:"description"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	AuditFields
}

// IsDebit reports whether the line carries its amount on the debit side.
func (l JournalLine) IsDebit() bool {
	return l.DebitAmount.IsPositive()
}

// Amount is the positive magnitude of the line regardless of side.
func (l JournalLine) Amount() decimal.Decimal {
	if l.IsDebit() {
		return l.DebitAmount
	}
	return l.CreditAmount
}
