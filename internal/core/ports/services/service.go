package services

// ServiceContainer is what the HTTP layer sees of the banking core.
type ServiceContainer struct {
	Access     AccessSvcFacade
	Account    AccountSvcFacade
	Ledger     LedgerSvcFacade
	MoneyEvent MoneyEventSvcFacade
	User       UserSvcFacade
}
