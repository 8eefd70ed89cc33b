package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/savorworks/ledger_backend/internal/apperrors"
	"github.com/savorworks/ledger_backend/internal/core/domain"
	portsrepo "github.com/savorworks/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/savorworks/ledger_backend/internal/core/ports/services"
	"github.com/savorworks/ledger_backend/internal/dto"
	"github.com/savorworks/ledger_backend/internal/platform/events"
	"github.com/savorworks/ledger_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// journalServiceImpl implements the JournalSvcFacade interface
type journalServiceImpl struct {
	BaseService
	journalRepo   portsrepo.JournalRepositoryFacade
	accountSvc    portssvc.AccountSvcFacade
	publisher     events.Publisher
	topicPosted   string
	topicReversed string
}

// JournalServiceOption is a functional option for configuring the journal service
type JournalServiceOption func(*journalServiceImpl)

// WithJournalOrganizationAuthorizer adds the organization authorizer dependency
func WithJournalOrganizationAuthorizer(authorizer portssvc.OrganizationAuthorizerSvc) JournalServiceOption {
	return func(s *journalServiceImpl) {
		s.OrganizationAuthorizer = authorizer
	}
}

// WithEventPublisher adds a broker publisher for posted/reversed events
func WithEventPublisher(publisher events.Publisher, topicPosted, topicReversed string) JournalServiceOption {
	return func(s *journalServiceImpl) {
		s.publisher = publisher
		s.topicPosted = topicPosted
		s.topicReversed = topicReversed
	}
}

// NewJournalService creates a new journal service with the provided options
func NewJournalService(repo portsrepo.JournalRepositoryFacade, accountSvc portssvc.AccountSvcFacade, options ...JournalServiceOption) portssvc.JournalSvcFacade {
	svc := &journalServiceImpl{
		journalRepo: repo,
		accountSvc:  accountSvc,
		publisher:   events.NoopPublisher{},
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure journalServiceImpl implements the JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalServiceImpl)(nil)

// buildLines materializes request lines into domain lines, numbering them
// from input order.
func buildLines(entryID string, reqLines []dto.CreateJournalLineRequest, userID string, now time.Time) []domain.JournalLine {
	lines := make([]domain.JournalLine, len(reqLines))
	for i, rl := range reqLines {
		lines[i] = domain.JournalLine{
			LineID:       uuid.NewString(),
			EntryID:      entryID,
			AccountID:    rl.AccountID,
			LineNumber:   i + 1,
			Description:  rl.Description,
			DebitAmount:  rl.DebitAmount,
			CreditAmount: rl.CreditAmount,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}
	return lines
}

// resolveLineAccounts validates that every referenced account exists in the
// organization and is active, and returns them keyed by ID.
func (s *journalServiceImpl) resolveLineAccounts(ctx context.Context, organizationID string, lines []domain.JournalLine) (map[string]domain.Account, error) {
	accountIDs := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.AccountID]; ok {
			continue
		}
		seen[line.AccountID] = struct{}{}
		accountIDs = append(accountIDs, line.AccountID)
	}

	accounts, err := s.accountSvc.GetAccountByIDs(ctx, organizationID, accountIDs)
	if err != nil {
		return nil, err
	}
	for _, id := range accountIDs {
		acc, ok := accounts[id]
		if !ok {
			return nil, fmt.Errorf("%w: account %s does not exist", apperrors.ErrValidation, id)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
	}
	return accounts, nil
}

// calculateBalanceChanges folds every line's signed effect into a per-account
// delta, expressed in each account's normal balance terms.
func calculateBalanceChanges(lines []domain.JournalLine, accounts map[string]domain.Account) (map[string]decimal.Decimal, error) {
	changes := make(map[string]decimal.Decimal, len(accounts))
	for _, line := range lines {
		acc, ok := accounts[line.AccountID]
		if !ok {
			return nil, fmt.Errorf("account %s missing during balance calculation", line.AccountID)
		}
		effect, err := accounting.SignedEffect(line, acc.NormalBalance)
		if err != nil {
			return nil, err
		}
		changes[line.AccountID] = changes[line.AccountID].Add(effect)
	}
	return changes, nil
}

func (s *journalServiceImpl) CreateEntry(ctx context.Context, organizationID string, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, organizationID, domain.RoleMember); err != nil {
		s.LogError(ctx, err, "User not authorized to create journal entry",
			slog.String("user_id", creatorUserID),
			slog.String("organization_id", organizationID))
		return nil, err
	}

	// Binding tags guard the handler path; drafts created through other
	// callers still need a non-empty description.
	if strings.TrimSpace(req.Description) == "" {
		return nil, fmt.Errorf("%w: description must not be empty", apperrors.ErrValidation)
	}

	now := time.Now()
	entryID := uuid.NewString()
	lines := buildLines(entryID, req.Lines, creatorUserID, now)

	if err := accounting.ValidateEntryLines(lines); err != nil {
		return nil, err
	}
	if _, err := s.resolveLineAccounts(ctx, organizationID, lines); err != nil {
		return nil, err
	}

	entry := domain.JournalEntry{
		EntryID:        entryID,
		OrganizationID: organizationID,
		EntryDate:      req.EntryDate,
		Description:    req.Description,
		Reference:      req.Reference,
		Status:         domain.Draft,
		Lines:          lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	entryNumber, err := s.journalRepo.CreateEntry(ctx, entry, lines)
	if err != nil {
		s.LogError(ctx, err, "Failed to create journal entry", slog.String("entry_id", entryID))
		return nil, err
	}
	entry.EntryNumber = entryNumber

	s.LogInfo(ctx, "Journal entry created",
		slog.String("entry_id", entryID),
		slog.String("entry_number", entryNumber))
	return &entry, nil
}

func (s *journalServiceImpl) GetEntryByID(ctx context.Context, organizationID string, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.OrganizationID != organizationID {
		return nil, apperrors.ErrNotFound
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	entry.Lines = lines
	return entry, nil
}

func (s *journalServiceImpl) ListEntries(ctx context.Context, organizationID string, params dto.ListEntriesParams) ([]domain.JournalEntry, *string, error) {
	entries, nextToken, err := s.journalRepo.ListEntries(ctx, organizationID, params)
	if err != nil {
		return nil, nil, err
	}

	if params.IncludeLines && len(entries) > 0 {
		entryIDs := make([]string, len(entries))
		for i := range entries {
			entryIDs[i] = entries[i].EntryID
		}
		linesMap, err := s.journalRepo.FindLinesByEntryIDs(ctx, entryIDs)
		if err != nil {
			return nil, nil, err
		}
		for i := range entries {
			entries[i].Lines = linesMap[entries[i].EntryID]
		}
	}
	return entries, nextToken, nil
}

func (s *journalServiceImpl) UpdateEntry(ctx context.Context, organizationID string, entryID string, req dto.UpdateJournalEntryRequest, updaterUserID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, updaterUserID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}
	if req.Description != nil && strings.TrimSpace(*req.Description) == "" {
		return nil, fmt.Errorf("%w: description must not be empty", apperrors.ErrValidation)
	}

	entry, err := s.GetEntryByID(ctx, organizationID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Draft {
		return nil, fmt.Errorf("%w: entry %s is %s", apperrors.ErrImmutableEntry, entryID, entry.Status)
	}

	if req.EntryDate != nil {
		entry.EntryDate = *req.EntryDate
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}
	if req.Reference != nil {
		entry.Reference = *req.Reference
	}

	now := time.Now()
	var newLines []domain.JournalLine
	if req.Lines != nil {
		newLines = buildLines(entryID, req.Lines, updaterUserID, now)
		if err := accounting.ValidateEntryLines(newLines); err != nil {
			return nil, err
		}
		if _, err := s.resolveLineAccounts(ctx, organizationID, newLines); err != nil {
			return nil, err
		}
		entry.Lines = newLines
	}

	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = updaterUserID

	// The repository re-checks the draft status under a row lock; a
	// concurrent post between our read and this write still loses.
	if err := s.journalRepo.UpdateDraftEntry(ctx, *entry, newLines); err != nil {
		s.LogError(ctx, err, "Failed to update journal entry", slog.String("entry_id", entryID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry updated", slog.String("entry_id", entryID))
	return entry, nil
}

func (s *journalServiceImpl) DeleteEntry(ctx context.Context, organizationID string, entryID string, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return err
	}

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return err
	}
	if entry.OrganizationID != organizationID {
		return apperrors.ErrNotFound
	}
	if entry.Status != domain.Draft {
		return fmt.Errorf("%w: entry %s is %s", apperrors.ErrImmutableEntry, entryID, entry.Status)
	}

	if err := s.journalRepo.DeleteDraftEntry(ctx, entryID, userID); err != nil {
		s.LogError(ctx, err, "Failed to delete journal entry", slog.String("entry_id", entryID))
		return err
	}

	s.LogInfo(ctx, "Journal entry deleted", slog.String("entry_id", entryID))
	return nil
}

func (s *journalServiceImpl) PostEntry(ctx context.Context, organizationID string, entryID string, userID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}

	entry, err := s.GetEntryByID(ctx, organizationID, entryID)
	if err != nil {
		return nil, err
	}
	if _, err := entry.Status.Transition(domain.ActionPost); err != nil {
		return nil, err
	}

	// Re-validate the full invariant at the posting boundary: the draft may
	// have been created before an account was deactivated.
	if err := accounting.ValidateEntryLines(entry.Lines); err != nil {
		return nil, fmt.Errorf("%w: entry %s no longer balances", apperrors.ErrDataIntegrity, entryID)
	}
	accounts, err := s.resolveLineAccounts(ctx, organizationID, entry.Lines)
	if err != nil {
		return nil, err
	}
	balanceChanges, err := calculateBalanceChanges(entry.Lines, accounts)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.journalRepo.PostEntry(ctx, entryID, userID, now, entry.Lines, balanceChanges); err != nil {
		s.LogError(ctx, err, "Failed to post journal entry", slog.String("entry_id", entryID))
		return nil, err
	}

	entry.Status = domain.Posted
	entry.ApprovedBy = &userID
	entry.ApprovedAt = &now
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID

	s.LogInfo(ctx, "Journal entry posted",
		slog.String("entry_id", entryID),
		slog.String("entry_number", entry.EntryNumber))

	if pubErr := s.publisher.Publish(ctx, s.topicPosted, events.EntryPostedEvent{
		EntryID:        entry.EntryID,
		OrganizationID: entry.OrganizationID,
		EntryNumber:    entry.EntryNumber,
		EntryDate:      entry.EntryDate,
		PostedBy:       userID,
		PostedAt:       now,
	}); pubErr != nil {
		// The ledger write already committed; a broker outage must not
		// surface as a posting failure.
		s.LogError(ctx, pubErr, "Failed to publish entry posted event", slog.String("entry_id", entryID))
	}

	return entry, nil
}

func (s *journalServiceImpl) ReverseEntry(ctx context.Context, organizationID string, entryID string, userID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}

	original, err := s.GetEntryByID(ctx, organizationID, entryID)
	if err != nil {
		return nil, err
	}
	if _, err := original.Status.Transition(domain.ActionReverse); err != nil {
		return nil, err
	}

	accounts, err := s.resolveLineAccounts(ctx, organizationID, original.Lines)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	reversingID := uuid.NewString()

	// Mirror every line with the sides swapped.
	reversingLines := make([]domain.JournalLine, len(original.Lines))
	for i, line := range original.Lines {
		reversingLines[i] = domain.JournalLine{
			LineID:       uuid.NewString(),
			EntryID:      reversingID,
			AccountID:    line.AccountID,
			LineNumber:   line.LineNumber,
			Description:  line.Description,
			DebitAmount:  line.CreditAmount,
			CreditAmount: line.DebitAmount,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	balanceChanges, err := calculateBalanceChanges(reversingLines, accounts)
	if err != nil {
		return nil, err
	}

	originalID := original.EntryID
	reversing := domain.JournalEntry{
		EntryID:         reversingID,
		OrganizationID:  organizationID,
		EntryDate:       now,
		Description:     "Reversal of " + original.EntryNumber + ": " + original.Description,
		Reference:       original.EntryNumber,
		Status:          domain.Posted,
		ApprovedBy:      &userID,
		ApprovedAt:      &now,
		OriginalEntryID: &originalID,
		Lines:           reversingLines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	entryNumber, err := s.journalRepo.ReverseEntry(ctx, originalID, reversing, reversingLines, balanceChanges)
	if err != nil {
		s.LogError(ctx, err, "Failed to reverse journal entry", slog.String("entry_id", entryID))
		return nil, err
	}
	reversing.EntryNumber = entryNumber

	s.LogInfo(ctx, "Journal entry reversed",
		slog.String("original_entry_id", originalID),
		slog.String("reversing_entry_id", reversingID),
		slog.String("entry_number", entryNumber))

	if pubErr := s.publisher.Publish(ctx, s.topicReversed, events.EntryReversedEvent{
		OriginalEntryID:  originalID,
		ReversingEntryID: reversingID,
		OrganizationID:   organizationID,
		ReversedBy:       userID,
		ReversedAt:       now,
	}); pubErr != nil {
		s.LogError(ctx, pubErr, "Failed to publish entry reversed event", slog.String("entry_id", entryID))
	}

	return &reversing, nil
}

func (s *journalServiceImpl) ListLinesByAccount(ctx context.Context, organizationID string, accountID string, params dto.ListLinesParams) ([]domain.JournalLine, *string, error) {
	if _, err := s.accountSvc.GetAccountByID(ctx, organizationID, accountID); err != nil {
		return nil, nil, err
	}
	return s.journalRepo.ListLinesByAccountID(ctx, organizationID, accountID, params)
}
