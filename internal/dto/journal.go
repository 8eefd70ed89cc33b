package dto

import (
	"time"

	"github.com/savorworks/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateJournalLineRequest is a single line of a journal entry payload.
// Exactly one of debitAmount/creditAmount must be strictly positive.
type CreateJournalLineRequest struct {
	AccountID    string          `json:"accountID" binding:"required"`
	Description  string          `json:"description"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
}

// CreateJournalEntryRequest is the payload for creating a draft entry.
// Line numbers are assigned from the input order.
type CreateJournalEntryRequest struct {
	EntryDate   time.Time                  `json:"entryDate" binding:"required"`
	Description string                     `json:"description" binding:"required"`
	Reference   string                     `json:"reference"`
	Lines       []CreateJournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// UpdateJournalEntryRequest is a partial update of a draft entry. A non-nil
// Lines slice fully replaces the draft's line set and is re-validated.
type UpdateJournalEntryRequest struct {
	EntryDate   *time.Time                 `json:"entryDate"`
	Description *string                    `json:"description"`
	Reference   *string                    `json:"reference"`
	Lines       []CreateJournalLineRequest `json:"lines" binding:"omitempty,min=2,dive"`
}

// ListEntriesParams carries the journal listing filters.
// AccountID filters to entries containing at least one line on the account.
type ListEntriesParams struct {
	AccountID    *string
	Status       *domain.EntryStatus
	FromDate     *time.Time
	ToDate       *time.Time
	Limit        int
	NextToken    *string
	IncludeLines bool
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID       string          `json:"lineID"`
	AccountID    string          `json:"accountID"`
	LineNumber   int             `json:"lineNumber"`
	Description  string          `json:"description,omitempty"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID          string                `json:"entryID"`
	EntryNumber      string                `json:"entryNumber"`
	EntryDate        time.Time             `json:"entryDate"`
	Description      string                `json:"description"`
	Reference        string                `json:"reference,omitempty"`
	Status           string                `json:"status"`
	ApprovedBy       *string               `json:"approvedBy,omitempty"`
	ApprovedAt       *time.Time            `json:"approvedAt,omitempty"`
	OriginalEntryID  *string               `json:"originalEntryID,omitempty"`
	ReversingEntryID *string               `json:"reversingEntryID,omitempty"`
	CreatedAt        time.Time             `json:"createdAt"`
	CreatedBy        string                `json:"createdBy"`
	Lines            []JournalLineResponse `json:"lines,omitempty"`
}

// ListEntriesResponse is a page of journal entries plus the next cursor.
type ListEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ListLinesParams carries account activity listing parameters.
type ListLinesParams struct {
	Limit     int
	NextToken *string
}

// ListLinesResponse is a page of journal lines plus the next cursor.
type ListLinesResponse struct {
	Lines     []JournalLineResponse `json:"lines"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// ToJournalLineResponse converts a domain JournalLine to its response DTO.
func ToJournalLineResponse(l *domain.JournalLine) JournalLineResponse {
	return JournalLineResponse{
		LineID:       l.LineID,
		AccountID:    l.AccountID,
		LineNumber:   l.LineNumber,
		Description:  l.Description,
		DebitAmount:  l.DebitAmount,
		CreditAmount: l.CreditAmount,
	}
}

// ToJournalLineResponses converts a slice of domain JournalLines to DTOs.
func ToJournalLineResponses(lines []domain.JournalLine) []JournalLineResponse {
	responses := make([]JournalLineResponse, len(lines))
	for i := range lines {
		responses[i] = ToJournalLineResponse(&lines[i])
	}
	return responses
}

// ToJournalEntryResponse converts a domain JournalEntry to its response DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		EntryID:          e.EntryID,
		EntryNumber:      e.EntryNumber,
		EntryDate:        e.EntryDate,
		Description:      e.Description,
		Reference:        e.Reference,
		Status:           string(e.Status),
		ApprovedBy:       e.ApprovedBy,
		ApprovedAt:       e.ApprovedAt,
		OriginalEntryID:  e.OriginalEntryID,
		ReversingEntryID: e.ReversingEntryID,
		CreatedAt:        e.CreatedAt,
		CreatedBy:        e.CreatedBy,
	}
	if len(e.Lines) > 0 {
		resp.Lines = ToJournalLineResponses(e.Lines)
	}
	return resp
}
