package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pocketledger/pocket_ledger_app/internal/apperrors"
	"github.com/pocketledger/pocket_ledger_app/internal/core/domain"
	portsrepo "github.com/pocketledger/pocket_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/pocketledger/pocket_ledger_app/internal/core/ports/services"
	"github.com/pocketledger/pocket_ledger_app/internal/platform/cache"
)

// accountService provides account read operations with a read-through
// balance cache in front of the database.
type accountService struct {
	accountRepo  portsrepo.AccountRepositoryFacade
	balanceCache *cache.BalanceCache
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, balanceCache *cache.BalanceCache) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo:  accountRepo,
		balanceCache: balanceCache,
	}
}

// Ensure accountService implements the portssvc.AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// GetAccountForUser retrieves the single account owned by the user.
func (s *accountService) GetAccountForUser(ctx context.Context, userID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByOwnerID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to load account for user %s: %w", userID, err)
	}
	return account, nil
}

// GetBalance returns the current balance of an account, served from the
// cache when warm and refilled from the database on a miss.
func (s *accountService) GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	if balance, ok := s.balanceCache.Get(ctx, accountID); ok {
		return balance, nil
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, ErrAccountNotFound
		}
		return decimal.Zero, fmt.Errorf("failed to load account %s: %w", accountID, err)
	}

	s.balanceCache.Set(ctx, accountID, account.Balance)
	return account.Balance, nil
}
