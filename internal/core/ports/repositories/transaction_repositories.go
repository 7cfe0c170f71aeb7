package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/pocketledger/pocket_ledger_app/internal/core/domain"
)

// TransactionReader defines read operations for transaction data.
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction by its unique
	// identifier, including its reversal linkage.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsForAccount retrieves every transaction where the given
	// account is the filing account, sender, or receiver, ordered by
	// created_at descending with transaction_id as a stable tie-break.
	// A limit <= 0 returns the full history; with a positive limit a
	// next-page token is returned while more rows exist.
	ListTransactionsForAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionWriter defines the atomic write operations of the ledger.
//
// Each call commits the transaction record together with all balance
// adjustments as a single all-or-nothing unit. Accounts named in
// nonNegative must not be left with a balance below zero; if applying the
// changes would do so, the write fails wholesale with a conflict error.
// This is the authoritative balance check: it runs after the rows are
// locked, so a concurrent debit cannot slip between check and commit.
type TransactionWriter interface {
	// SaveTransaction persists a deposit, withdrawal, or transfer and applies
	// its balance changes. It returns the resulting balance of every touched
	// account.
	SaveTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal, nonNegative []string) (map[string]decimal.Decimal, error)

	// SaveReversal persists a reversal, applies its balance changes, and
	// flips the original transfer to REVERSED with a back-link -- all in one
	// database transaction. If the original is no longer ACTIVE, or another
	// reversal already references it, the write fails with a conflict error.
	SaveReversal(ctx context.Context, reversal domain.Transaction, balanceChanges map[string]decimal.Decimal, nonNegative []string, originalTransactionID string) (map[string]decimal.Decimal, error)
}

// TransactionRepositoryFacade combines all transaction-related repository
// interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
