package services

import (
	portsrepo "github.com/pocketledger/pocket_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/pocketledger/pocket_ledger_app/internal/core/ports/services"
	"github.com/pocketledger/pocket_ledger_app/internal/platform/cache"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, balanceCache *cache.BalanceCache) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Account = NewAccountService(repos.AccountRepo, balanceCache)
	container.Ledger = NewLedgerService(repos.TransactionRepo, repos.AccountRepo, balanceCache)
	container.History = NewHistoryService(repos.TransactionRepo, repos.AccountRepo)

	return container
}
