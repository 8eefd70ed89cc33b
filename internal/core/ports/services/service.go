package services

// ServiceContainer bundles every service facade the handlers depend on.
type ServiceContainer struct {
	AccountSvc      AccountSvcFacade
	JournalSvc      JournalSvcFacade
	ReportingSvc    ReportingSvcFacade
	OrganizationSvc OrganizationSvcFacade
	UserSvc         UserSvcFacade
	AuthSvc         AuthSvcFacade
}
