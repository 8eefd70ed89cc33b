package services

import (
	"context"

	"github.com/savorworks/ledger_backend/internal/core/domain"
	"github.com/savorworks/ledger_backend/internal/dto"
)

// JournalSvcFacade defines the journal entry lifecycle operations.
type JournalSvcFacade interface {
	// CreateEntry validates and persists a new DRAFT entry.
	CreateEntry(ctx context.Context, organizationID string, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error)
	// GetEntryByID retrieves an entry with its lines, scoped to the organization.
	GetEntryByID(ctx context.Context, organizationID string, entryID string) (*domain.JournalEntry, error)
	// ListEntries retrieves a filtered page of entries.
	ListEntries(ctx context.Context, organizationID string, params dto.ListEntriesParams) ([]domain.JournalEntry, *string, error)
	// UpdateEntry applies a partial update to a DRAFT entry.
	UpdateEntry(ctx context.Context, organizationID string, entryID string, req dto.UpdateJournalEntryRequest, updaterUserID string) (*domain.JournalEntry, error)
	// DeleteEntry removes a DRAFT entry.
	DeleteEntry(ctx context.Context, organizationID string, entryID string, userID string) error
	// PostEntry transitions a DRAFT entry to POSTED and applies balances.
	PostEntry(ctx context.Context, organizationID string, entryID string, userID string) (*domain.JournalEntry, error)
	// ReverseEntry creates and posts the mirror of a POSTED entry.
	ReverseEntry(ctx context.Context, organizationID string, entryID string, userID string) (*domain.JournalEntry, error)
	// ListLinesByAccount retrieves an account's posted activity, newest first.
	ListLinesByAccount(ctx context.Context, organizationID string, accountID string, params dto.ListLinesParams) ([]domain.JournalLine, *string, error)
}
