package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/pocketledger/pocket_ledger_app/internal/core/domain"
)

// AccountReaderSvc defines read operations for account data.
type AccountReaderSvc interface {
	// GetAccountForUser retrieves the single account owned by the user.
	GetAccountForUser(ctx context.Context, userID string) (*domain.Account, error)

	// GetBalance returns the current balance of an account, served from the
	// balance cache when warm.
	GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error)
}

// AccountSvcFacade combines all account-related service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
}
