package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/pocketledger/pocket_ledger_app/internal/core/domain"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByOwnerID retrieves the single account owned by a user.
	FindAccountByOwnerID(ctx context.Context, ownerUserID string) (*domain.Account, error)

	// FindAccountByOwnerEmail resolves a transfer recipient's account by the
	// owner's email address.
	FindAccountByOwnerEmail(ctx context.Context, email string) (*domain.Account, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccountInTx persists a new account (balance zero) within an open
	// transaction; invoked once at user provisioning.
	SaveAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account) error
}

// AccountTransactionSupport defines the operations the ledger engine's
// atomic writes depend on.
type AccountTransactionSupport interface {
	// FindAccountsByIDsForUpdate selects accounts and locks their rows for
	// update within a transaction. Locks are acquired in sorted-ID order so
	// concurrent multi-account writes cannot deadlock.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// ApplyBalanceChangesInTx adjusts the balance of each account by the
	// given signed delta within an open transaction.
	ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}
