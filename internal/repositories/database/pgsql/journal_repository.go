package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/savorworks/ledger_backend/internal/apperrors"
	"github.com/savorworks/ledger_backend/internal/core/domain"
	portsrepo "github.com/savorworks/ledger_backend/internal/core/ports/repositories"
	"github.com/savorworks/ledger_backend/internal/dto"
	"github.com/savorworks/ledger_backend/internal/models"
	"github.com/savorworks/ledger_backend/internal/utils/mapping"
	"github.com/savorworks/ledger_backend/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

const entryColumns = `entry_id, organization_id, entry_number, entry_date, description, reference, status,
	       approved_by, approved_at, original_entry_id, reversing_entry_id,
	       created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, entry_id, account_id, line_number, description, debit_amount, credit_amount,
	       created_at, created_by, last_updated_at, last_updated_by`

const insertLineQuery = `
	INSERT INTO journal_lines (line_id, entry_id, account_id, line_number, description, debit_amount, credit_amount, created_at, created_by, last_updated_at, last_updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
`

type PgxJournalRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxJournalRepository creates a new repository for journal entry and line data.
func newPgxJournalRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	var reference sql.NullString
	err := row.Scan(
		&m.EntryID,
		&m.OrganizationID,
		&m.EntryNumber,
		&m.EntryDate,
		&m.Description,
		&reference,
		&m.Status,
		&m.ApprovedBy,
		&m.ApprovedAt,
		&m.OriginalEntryID,
		&m.ReversingEntryID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return m, err
	}
	if reference.Valid {
		m.Reference = reference.String
	}
	return m, nil
}

func scanLine(row pgx.Row) (models.JournalLine, error) {
	var m models.JournalLine
	err := row.Scan(
		&m.LineID,
		&m.EntryID,
		&m.AccountID,
		&m.LineNumber,
		&m.Description,
		&m.DebitAmount,
		&m.CreditAmount,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// allocateEntryNumber claims the organization's next journal sequence value
// inside the given transaction. The organization row is locked by the UPDATE,
// so concurrent creators serialize here and no number is issued twice.
func allocateEntryNumber(ctx context.Context, tx pgx.Tx, organizationID string) (string, error) {
	query := `
		UPDATE organizations
		SET next_entry_seq = next_entry_seq + 1
		WHERE organization_id = $1
		RETURNING next_entry_seq - 1;
	`
	var seq int64
	if err := tx.QueryRow(ctx, query, organizationID).Scan(&seq); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("%w: organization %s", apperrors.ErrNotFound, organizationID)
		}
		return "", apperrors.NewAppError(500, "failed to allocate entry number for organization "+organizationID, err)
	}
	return fmt.Sprintf("JE-%06d", seq), nil
}

// lockEntryStatus locks the entry row and returns its current status.
func lockEntryStatus(ctx context.Context, tx pgx.Tx, entryID string) (domain.EntryStatus, error) {
	var status models.EntryStatus
	err := tx.QueryRow(ctx, `SELECT status FROM journal_entries WHERE entry_id = $1 FOR UPDATE;`, entryID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", apperrors.NewAppError(500, "failed to lock journal entry "+entryID, err)
	}
	return domain.EntryStatus(status), nil
}

// fetchLinesInTx reads an entry's lines inside the transaction, ordered by
// line number. With the entry row already locked, no draft update can slip
// in between this read and the commit.
func fetchLinesInTx(ctx context.Context, tx pgx.Tx, entryID string) ([]models.JournalLine, error) {
	query := `
		SELECT ` + lineColumns + `
		FROM journal_lines
		WHERE entry_id = $1
		ORDER BY line_number;
	`
	rows, err := tx.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to re-read lines for journal entry "+entryID, err)
	}
	defer rows.Close()

	lines := []models.JournalLine{}
	for rows.Next() {
		m, scanErr := scanLine(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan re-read line for journal entry "+entryID, scanErr)
		}
		lines = append(lines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating re-read lines for journal entry "+entryID, err)
	}
	return lines, nil
}

// linesMatch reports whether the stored line set still carries the accounts
// and amounts the balance deltas were computed from.
func linesMatch(stored []models.JournalLine, expected []domain.JournalLine) bool {
	if len(stored) != len(expected) {
		return false
	}
	for i, m := range stored {
		e := expected[i]
		if m.AccountID != e.AccountID ||
			!m.DebitAmount.Equal(e.DebitAmount) ||
			!m.CreditAmount.Equal(e.CreditAmount) {
			return false
		}
	}
	return true
}

func queueLineInserts(batch *pgx.Batch, lines []domain.JournalLine) {
	for _, line := range lines {
		m := mapping.ToModelJournalLine(line)
		batch.Queue(insertLineQuery,
			m.LineID,
			m.EntryID,
			m.AccountID,
			m.LineNumber,
			m.Description,
			m.DebitAmount,
			m.CreditAmount,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}
}

// CreateEntry persists a new draft entry with its lines. The entry number is
// allocated from the organization sequence inside the same transaction.
func (r *PgxJournalRepository) CreateEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) (string, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer r.Rollback(ctx, tx)

	entryNumber, err := allocateEntryNumber(ctx, tx, entry.OrganizationID)
	if err != nil {
		return "", err
	}

	modelEntry := mapping.ToModelJournalEntry(entry)
	modelEntry.EntryNumber = entryNumber

	entryQuery := `
		INSERT INTO journal_entries (
			entry_id, organization_id, entry_number, entry_date, description, reference, status,
			approved_by, approved_at, original_entry_id, reversing_entry_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = tx.Exec(ctx, entryQuery,
		modelEntry.EntryID,
		modelEntry.OrganizationID,
		modelEntry.EntryNumber,
		modelEntry.EntryDate,
		modelEntry.Description,
		modelEntry.Reference,
		modelEntry.Status,
		modelEntry.ApprovedBy,
		modelEntry.ApprovedAt,
		modelEntry.OriginalEntryID,
		modelEntry.ReversingEntryID,
		modelEntry.CreatedAt,
		modelEntry.CreatedBy,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	)
	if err != nil {
		return "", apperrors.NewAppError(500, "failed to insert journal entry "+modelEntry.EntryID, err)
	}

	batch := &pgx.Batch{}
	queueLineInserts(batch, lines)
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return "", apperrors.NewAppError(500, "failed to insert lines for journal entry "+modelEntry.EntryID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return "", err
	}
	return entryNumber, nil
}

// UpdateDraftEntry replaces a draft's header fields and line set. The entry
// row is locked first; a non-draft status aborts the transaction.
func (r *PgxJournalRepository) UpdateDraftEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	status, err := lockEntryStatus(ctx, tx, entry.EntryID)
	if err != nil {
		return err
	}
	if status != domain.Draft {
		return fmt.Errorf("%w: entry %s is %s", apperrors.ErrImmutableEntry, entry.EntryID, status)
	}

	modelEntry := mapping.ToModelJournalEntry(entry)
	updateQuery := `
		UPDATE journal_entries
		SET entry_date = $2,
		    description = $3,
		    reference = $4,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE entry_id = $1;
	`
	_, err = tx.Exec(ctx, updateQuery,
		modelEntry.EntryID,
		modelEntry.EntryDate,
		modelEntry.Description,
		modelEntry.Reference,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update journal entry "+modelEntry.EntryID, err)
	}

	if lines != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, modelEntry.EntryID); err != nil {
			return apperrors.NewAppError(500, "failed to clear lines for journal entry "+modelEntry.EntryID, err)
		}
		batch := &pgx.Batch{}
		queueLineInserts(batch, lines)
		br := tx.SendBatch(ctx, batch)
		if err := br.Close(); err != nil {
			return apperrors.NewAppError(500, "failed to replace lines for journal entry "+modelEntry.EntryID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// DeleteDraftEntry removes a draft entry and its lines.
func (r *PgxJournalRepository) DeleteDraftEntry(ctx context.Context, entryID string, userID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	status, err := lockEntryStatus(ctx, tx, entryID)
	if err != nil {
		return err
	}
	if status != domain.Draft {
		return fmt.Errorf("%w: entry %s is %s", apperrors.ErrImmutableEntry, entryID, status)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, entryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete lines for journal entry "+entryID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1;`, entryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete journal entry "+entryID, err)
	}

	return r.Commit(ctx, tx)
}

// PostEntry transitions a draft to POSTED and applies the balance deltas to
// the affected accounts within one transaction. The status and line set are
// both re-checked under the entry row lock: two concurrent posts cannot both
// succeed, and a draft update that replaced the lines after the caller
// validated them fails with ErrConflict instead of applying stale deltas.
func (r *PgxJournalRepository) PostEntry(ctx context.Context, entryID string, approvedBy string, approvedAt time.Time, lines []domain.JournalLine, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	status, err := lockEntryStatus(ctx, tx, entryID)
	if err != nil {
		return err
	}
	if _, err := status.Transition(domain.ActionPost); err != nil {
		return err
	}

	stored, err := fetchLinesInTx(ctx, tx, entryID)
	if err != nil {
		return err
	}
	if !linesMatch(stored, lines) {
		return fmt.Errorf("%w: entry %s was modified concurrently", apperrors.ErrConflict, entryID)
	}

	accountIDs := make([]string, 0, len(balanceChanges))
	for accID := range balanceChanges {
		accountIDs = append(accountIDs, accID)
	}
	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
		return err
	}
	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, approvedBy, approvedAt); err != nil {
		return err
	}

	postQuery := `
		UPDATE journal_entries
		SET status = 'POSTED',
		    approved_by = $2,
		    approved_at = $3,
		    last_updated_at = $3,
		    last_updated_by = $2
		WHERE entry_id = $1;
	`
	if _, err := tx.Exec(ctx, postQuery, entryID, approvedBy, approvedAt); err != nil {
		return apperrors.NewAppError(500, "failed to post journal entry "+entryID, err)
	}

	return r.Commit(ctx, tx)
}

// ReverseEntry inserts the reversing entry as POSTED, marks the original
// REVERSED, links the two, and applies the balance deltas, all atomically.
// The allocated entry number of the reversing entry is returned.
func (r *PgxJournalRepository) ReverseEntry(ctx context.Context, originalEntryID string, reversing domain.JournalEntry, lines []domain.JournalLine, balanceChanges map[string]decimal.Decimal) (string, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer r.Rollback(ctx, tx)

	status, err := lockEntryStatus(ctx, tx, originalEntryID)
	if err != nil {
		return "", err
	}
	if _, err := status.Transition(domain.ActionReverse); err != nil {
		return "", err
	}

	entryNumber, err := allocateEntryNumber(ctx, tx, reversing.OrganizationID)
	if err != nil {
		return "", err
	}

	modelEntry := mapping.ToModelJournalEntry(reversing)
	modelEntry.EntryNumber = entryNumber

	insertQuery := `
		INSERT INTO journal_entries (
			entry_id, organization_id, entry_number, entry_date, description, reference, status,
			approved_by, approved_at, original_entry_id, reversing_entry_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = tx.Exec(ctx, insertQuery,
		modelEntry.EntryID,
		modelEntry.OrganizationID,
		modelEntry.EntryNumber,
		modelEntry.EntryDate,
		modelEntry.Description,
		modelEntry.Reference,
		modelEntry.Status,
		modelEntry.ApprovedBy,
		modelEntry.ApprovedAt,
		modelEntry.OriginalEntryID,
		modelEntry.ReversingEntryID,
		modelEntry.CreatedAt,
		modelEntry.CreatedBy,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	)
	if err != nil {
		return "", apperrors.NewAppError(500, "failed to insert reversing entry for "+originalEntryID, err)
	}

	batch := &pgx.Batch{}
	queueLineInserts(batch, lines)
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return "", apperrors.NewAppError(500, "failed to insert reversing lines for "+originalEntryID, err)
	}

	accountIDs := make([]string, 0, len(balanceChanges))
	for accID := range balanceChanges {
		accountIDs = append(accountIDs, accID)
	}
	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
		return "", err
	}
	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, reversing.CreatedBy, reversing.CreatedAt); err != nil {
		return "", err
	}

	linkQuery := `
		UPDATE journal_entries
		SET status = 'REVERSED',
		    reversing_entry_id = $2,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE entry_id = $1;
	`
	if _, err := tx.Exec(ctx, linkQuery, originalEntryID, reversing.EntryID, reversing.CreatedAt, reversing.CreatedBy); err != nil {
		return "", apperrors.NewAppError(500, "failed to mark entry "+originalEntryID+" reversed", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return "", err
	}
	return entryNumber, nil
}

// FindEntryByID retrieves a journal entry by its ID, without lines.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE entry_id = $1;
	`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry by ID "+entryID, err)
	}

	domainEntry := mapping.ToDomainJournalEntry(m)
	return &domainEntry, nil
}

// FindLinesByEntryID retrieves an entry's lines ordered by line number.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `
		SELECT ` + lineColumns + `
		FROM journal_lines
		WHERE entry_id = $1
		ORDER BY line_number;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for journal entry "+entryID, err)
	}
	defer rows.Close()

	lines := []models.JournalLine{}
	for rows.Next() {
		m, scanErr := scanLine(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for journal entry "+entryID, scanErr)
		}
		lines = append(lines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows for journal entry "+entryID, err)
	}

	return mapping.ToDomainJournalLineSlice(lines), nil
}

// FindLinesByEntryIDs retrieves lines for multiple entries keyed by entry ID.
// Entries with no lines get an empty slice.
func (r *PgxJournalRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error) {
	if len(entryIDs) == 0 {
		return map[string][]domain.JournalLine{}, nil
	}

	query := `
		SELECT ` + lineColumns + `
		FROM journal_lines
		WHERE entry_id = ANY($1)
		ORDER BY entry_id, line_number;
	`
	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for journal entries", err)
	}
	defer rows.Close()

	linesMap := make(map[string][]domain.JournalLine)
	for rows.Next() {
		m, scanErr := scanLine(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row during batch fetch", scanErr)
		}
		domainLine := mapping.ToDomainJournalLine(m)
		linesMap[domainLine.EntryID] = append(linesMap[domainLine.EntryID], domainLine)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows during batch fetch", err)
	}

	for _, id := range entryIDs {
		if _, exists := linesMap[id]; !exists {
			linesMap[id] = []domain.JournalLine{}
		}
	}
	return linesMap, nil
}

// ListEntries retrieves a filtered page of an organization's entries using
// token-based keyset pagination ordered by (entry_date, created_at) DESC.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, organizationID string, params dto.ListEntriesParams) ([]domain.JournalEntry, *string, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + entryColumns + `
		FROM journal_entries e
		WHERE e.organization_id = $1
	`
	args := []interface{}{organizationID}

	if params.Status != nil {
		args = append(args, string(*params.Status))
		baseQuery += ` AND e.status = $` + strconv.Itoa(len(args))
	}
	if params.FromDate != nil {
		args = append(args, *params.FromDate)
		baseQuery += ` AND e.entry_date >= $` + strconv.Itoa(len(args))
	}
	if params.ToDate != nil {
		args = append(args, *params.ToDate)
		baseQuery += ` AND e.entry_date <= $` + strconv.Itoa(len(args))
	}
	if params.AccountID != nil {
		args = append(args, *params.AccountID)
		baseQuery += ` AND EXISTS (SELECT 1 FROM journal_lines l WHERE l.entry_id = e.entry_id AND l.account_id = $` + strconv.Itoa(len(args)) + `)`
	}

	if params.NextToken != nil && *params.NextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*params.NextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastDate, lastCreatedAt)
		baseQuery += ` AND (e.entry_date, e.created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query := baseQuery + ` ORDER BY e.entry_date DESC, e.created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journal entries for organization "+organizationID, err)
	}
	defer rows.Close()

	modelEntries := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanEntry(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal entry row for organization "+organizationID, scanErr)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal entry rows for organization "+organizationID, err)
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		lastEntry := modelEntries[limit-1]
		newToken := pagination.EncodeToken(lastEntry.EntryDate, lastEntry.CreatedAt)
		nextTokenVal = &newToken
		results = modelEntries[:limit]
	}

	domainEntries := make([]domain.JournalEntry, len(results))
	for i, m := range results {
		domainEntries[i] = mapping.ToDomainJournalEntry(m)
	}
	return domainEntries, nextTokenVal, nil
}

// ListLinesByAccountID retrieves an account's posted activity, most recent
// first, using token-based keyset pagination. Lines of reversed originals
// stay visible alongside their mirrors.
func (r *PgxJournalRepository) ListLinesByAccountID(ctx context.Context, organizationID string, accountID string, params dto.ListLinesParams) ([]domain.JournalLine, *string, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT l.line_id, l.entry_id, l.account_id, l.line_number, l.description, l.debit_amount, l.credit_amount,
		       l.created_at, l.created_by, l.last_updated_at, l.last_updated_by, e.entry_date
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE l.account_id = $1 AND e.organization_id = $2 AND e.status IN ('POSTED', 'REVERSED')
	`
	orderByClause := `ORDER BY e.entry_date DESC, l.created_at DESC`

	args := []interface{}{accountID, organizationID}

	if params.NextToken != nil && *params.NextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*params.NextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastDate, lastCreatedAt)
		baseQuery += ` AND (e.entry_date, l.created_at) < ($3, $4)`
	}

	args = append(args, fetchLimit)
	query := baseQuery + " " + orderByClause + ` LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query lines for account "+accountID, err)
	}
	defer rows.Close()

	type lineWithDate struct {
		line      models.JournalLine
		entryDate time.Time
	}
	scanned := make([]lineWithDate, 0, fetchLimit)
	for rows.Next() {
		var m models.JournalLine
		var entryDate time.Time
		scanErr := rows.Scan(
			&m.LineID,
			&m.EntryID,
			&m.AccountID,
			&m.LineNumber,
			&m.Description,
			&m.DebitAmount,
			&m.CreditAmount,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
			&entryDate,
		)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan line row for account "+accountID, scanErr)
		}
		scanned = append(scanned, lineWithDate{line: m, entryDate: entryDate})
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating line rows for account "+accountID, err)
	}

	var nextTokenVal *string
	results := scanned
	if len(scanned) > limit {
		last := scanned[limit-1]
		newToken := pagination.EncodeToken(last.entryDate, last.line.CreatedAt)
		nextTokenVal = &newToken
		results = scanned[:limit]
	}

	lines := make([]models.JournalLine, len(results))
	for i, s := range results {
		lines[i] = s.line
	}
	return mapping.ToDomainJournalLineSlice(lines), nextTokenVal, nil
}
