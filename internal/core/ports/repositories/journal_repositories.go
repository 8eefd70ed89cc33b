package repositories

import (
	"context"
	"time"

	"github.com/savorworks/ledger_backend/internal/core/domain"
	"github.com/savorworks/ledger_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// JournalReader defines read operations for journal entries and lines.
type JournalReader interface {
	// FindEntryByID retrieves a journal entry without its lines.
	// Returns apperrors.ErrNotFound if no entry matches.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	// FindLinesByEntryID retrieves an entry's lines ordered by line number.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)
	// FindLinesByEntryIDs retrieves lines for multiple entries keyed by entry ID.
	FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error)
	// ListEntries retrieves a filtered page of entries using keyset pagination.
	ListEntries(ctx context.Context, organizationID string, params dto.ListEntriesParams) ([]domain.JournalEntry, *string, error)
	// ListLinesByAccountID retrieves an account's lines, most recent first.
	ListLinesByAccountID(ctx context.Context, organizationID string, accountID string, params dto.ListLinesParams) ([]domain.JournalLine, *string, error)
}

// JournalWriter defines write operations for journal entries.
type JournalWriter interface {
	// CreateEntry persists a new draft entry with its lines, allocating the
	// organization's next entry number inside the same transaction. The
	// allocated number is returned.
	CreateEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) (string, error)
	// UpdateDraftEntry replaces a draft's fields and lines. The entry row is
	// locked and its status re-checked inside the transaction.
	UpdateDraftEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error
	// DeleteDraftEntry removes a draft entry and its lines.
	DeleteDraftEntry(ctx context.Context, entryID string, userID string) error
	// PostEntry transitions a draft to POSTED and applies the balance deltas
	// to the affected accounts atomically. The stored line set is re-checked
	// against lines under the entry row lock; a concurrent draft update
	// between validation and posting fails with apperrors.ErrConflict.
	PostEntry(ctx context.Context, entryID string, approvedBy string, approvedAt time.Time, lines []domain.JournalLine, balanceChanges map[string]decimal.Decimal) error
	// ReverseEntry inserts the reversing entry as POSTED, marks the original
	// REVERSED, links the two, and applies the balance deltas atomically.
	ReverseEntry(ctx context.Context, originalEntryID string, reversing domain.JournalEntry, lines []domain.JournalLine, balanceChanges map[string]decimal.Decimal) (string, error)
}

// JournalRepositoryFacade combines all journal repository capabilities.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
