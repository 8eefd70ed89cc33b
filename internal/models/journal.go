package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	Draft    EntryStatus = "DRAFT"
	Posted   EntryStatus = "POSTED"
	Reversed EntryStatus = "REVERSED"
)

// JournalEntry represents a single, balanced financial event composed of
// multiple journal lines.
type JournalEntry struct {
	EntryID          string      `db:"entry_id"`
	OrganizationID   string      `db:"organization_id"`
	EntryNumber      string      `db:"entry_number"`
	EntryDate        time.Time   `db:"entry_date"`
	Description      string      `db:"description"`
	Reference        string      `db:"reference"`
	Status           EntryStatus `db:"status"`
	ApprovedBy       *string     `db:"approved_by"`
	ApprovedAt       *time.Time  `db:"approved_at"`
	OriginalEntryID  *string     `db:"original_entry_id"`
	ReversingEntryID *string     `db:"reversing_entry_id"`
	AuditFields
}

// JournalLine is a single line item within a journal entry, affecting one account.
type JournalLine struct {
	LineID       string          `db:"line_id"`
	EntryID      string          `db:"entry_id"`
	AccountID    string          `db:"account_id"`
	LineNumber   int             `db:"line_number"`
	Description  string          `db:"description"`
	DebitAmount  decimal.Decimal `db:"debit_amount"`
	CreditAmount decimal.Decimal `db:"credit_amount"`
	AuditFields
}
