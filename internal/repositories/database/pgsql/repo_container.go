package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/savorworks/ledger_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool, accountRepo)
	reportingRepo := newPgxReportingRepository(dbPool)
	organizationRepo := newPgxOrganizationRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:      accountRepo,
		JournalRepo:      journalRepo,
		ReportingRepo:    reportingRepo,
		OrganizationRepo: organizationRepo,
		UserRepo:         userRepo,
	}
}
