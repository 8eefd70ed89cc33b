package services

import (
	portsrepo "github.com/savorworks/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/savorworks/ledger_backend/internal/core/ports/services"
	"github.com/savorworks/ledger_backend/internal/platform/config"
	"github.com/savorworks/ledger_backend/internal/platform/events"
)

// NewServiceContainer wires every service with its repositories and
// cross-service dependencies.
func NewServiceContainer(repos portsrepo.RepositoryProvider, cfg *config.Config, publisher events.Publisher) portssvc.ServiceContainer {
	organizationSvc := NewOrganizationService(repos.OrganizationRepo)

	accountSvc := NewAccountService(repos.AccountRepo,
		WithAccountOrganizationAuthorizer(organizationSvc),
		WithReportingRepository(repos.ReportingRepo),
	)

	journalSvc := NewJournalService(repos.JournalRepo, accountSvc,
		WithJournalOrganizationAuthorizer(organizationSvc),
		WithEventPublisher(publisher, cfg.KafkaTopicPosted, cfg.KafkaTopicReversed),
	)

	reportingSvc := NewReportingService(repos.ReportingRepo,
		WithReportingOrganizationAuthorizer(organizationSvc),
	)

	userSvc := NewUserService(repos.UserRepo, cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTExpiryDuration)

	return portssvc.ServiceContainer{
		AccountSvc:      accountSvc,
		JournalSvc:      journalSvc,
		ReportingSvc:    reportingSvc,
		OrganizationSvc: organizationSvc,
		UserSvc:         userSvc,
		AuthSvc:         userSvc,
	}
}
