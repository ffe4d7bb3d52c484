package services

import (
	portsrepo "github.com/SscSPs/mybanking_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mybanking_app/internal/core/ports/services"
	"github.com/SscSPs/mybanking_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// balanceCache may be nil, in which case balances are always derived from the store.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, balanceCache portsrepo.BalanceCache) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Access control first since every other service authorizes through it
	container.Access = NewAccessService(repos.AccessRepo, repos.AccountRepo, repos.UserRepo)

	ledgerOptions := []LedgerOption{
		WithSufficientFundsCheck(cfg.RequireSufficientFunds),
		WithPageSizes(cfg.DefaultPageSize, cfg.MaxPageSize),
	}
	if balanceCache != nil {
		ledgerOptions = append(ledgerOptions, WithBalanceCache(balanceCache))
	}
	container.Ledger = NewLedgerService(repos.AccountRepo, repos.TransactionRepo, container.Access, ledgerOptions...)

	container.Account = NewAccountService(repos.AccountRepo, repos.AccessRepo, container.Ledger, container.Access)
	container.MoneyEvent = NewMoneyEventService(repos.MoneyEventRepo, repos.TransactionRepo, container.Access)
	container.User = NewUserService(repos.UserRepo)

	return container
}
