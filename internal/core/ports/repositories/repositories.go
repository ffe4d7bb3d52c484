package repositories

// RepositoryProvider bundles the storage ports the banking services depend on.
type RepositoryProvider struct {
	AccountRepo     AccountRepositoryWithTx
	AccessRepo      AccessRepositoryFacade
	TransactionRepo TransactionRepositoryWithTx
	UserRepo        UserRepositoryFacade
	MoneyEventRepo  MoneyEventRepositoryFacade
}
