package mapping

import (
	"github.com/savorworks/ledger_backend/internal/core/domain"
	"github.com/savorworks/ledger_backend/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:          d.EntryID,
		OrganizationID:   d.OrganizationID,
		EntryNumber:      d.EntryNumber,
		EntryDate:        d.EntryDate,
		Description:      d.Description,
		Reference:        d.Reference,
		Status:           models.EntryStatus(d.Status),
		ApprovedBy:       d.ApprovedBy,
		ApprovedAt:       d.ApprovedAt,
		OriginalEntryID:  d.OriginalEntryID,
		ReversingEntryID: d.ReversingEntryID,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:          m.EntryID,
		OrganizationID:   m.OrganizationID,
		EntryNumber:      m.EntryNumber,
		EntryDate:        m.EntryDate,
		Description:      m.Description,
		Reference:        m.Reference,
		Status:           domain.EntryStatus(m.Status),
		ApprovedBy:       m.ApprovedBy,
		ApprovedAt:       m.ApprovedAt,
		OriginalEntryID:  m.OriginalEntryID,
		ReversingEntryID: m.ReversingEntryID,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine.
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:       d.LineID,
		EntryID:      d.EntryID,
		AccountID:    d.AccountID,
		LineNumber:   d.LineNumber,
		Description:  d.Description,
		DebitAmount:  d.DebitAmount,
		CreditAmount: d.CreditAmount,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine.
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:       m.LineID,
		EntryID:      m.EntryID,
		AccountID:    m.AccountID,
		LineNumber:   m.LineNumber,
		Description:  m.Description,
		DebitAmount:  m.DebitAmount,
		CreditAmount: m.CreditAmount,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalLineSlice converts a slice of model JournalLines to domain JournalLines.
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}
