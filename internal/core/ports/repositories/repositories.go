package repositories

// RepositoryProvider bundles every repository facade the service layer needs.
type RepositoryProvider struct {
	AccountRepo      AccountRepositoryFacade
	JournalRepo      JournalRepositoryFacade
	ReportingRepo    ReportingRepositoryFacade
	OrganizationRepo OrganizationRepositoryFacade
	UserRepo         UserRepositoryFacade
}
