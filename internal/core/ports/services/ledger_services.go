package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/pocketledger/pocket_ledger_app/internal/core/domain"
	"github.com/pocketledger/pocket_ledger_app/internal/dto"
)

// LedgerMutationResult is returned by every balance-mutating ledger
// operation: the created record and the acting account's new balance.
type LedgerMutationResult struct {
	Transaction domain.Transaction
	NewBalance  decimal.Decimal
}

// LedgerWriterSvc defines the four balance-mutating ledger operations.
// callerUserID is the authenticated caller; every operation enforces
// ownership before touching a balance.
type LedgerWriterSvc interface {
	// Deposit credits the caller's account. Deposits are never
	// balance-checked.
	Deposit(ctx context.Context, callerUserID string, req dto.DepositRequest) (*LedgerMutationResult, error)

	// Withdraw debits the caller's account unconditionally; the resulting
	// balance may go negative.
	Withdraw(ctx context.Context, callerUserID string, req dto.WithdrawRequest) (*LedgerMutationResult, error)

	// Transfer moves funds from the caller's account to the account of the
	// user identified by req.TargetEmail. The source must cover the amount.
	Transfer(ctx context.Context, callerUserID string, req dto.TransferRequest) (*LedgerMutationResult, error)

	// ReverseTransaction undoes a transfer the caller originally sent,
	// restoring both balances and linking the new record to the original.
	ReverseTransaction(ctx context.Context, callerUserID string, transactionID string) (*domain.Transaction, error)
}

// LedgerReaderSvc defines ledger read operations.
type LedgerReaderSvc interface {
	// GetTransaction retrieves a transaction the caller participates in.
	GetTransaction(ctx context.Context, callerUserID string, transactionID string) (*domain.Transaction, error)
}

// LedgerSvcFacade combines all ledger engine interfaces.
type LedgerSvcFacade interface {
	LedgerWriterSvc
	LedgerReaderSvc
}

// HistorySvcFacade assembles the user-centric transaction history.
type HistorySvcFacade interface {
	// ListForUser returns every transaction touching the user's account (as
	// filing account, sender, or receiver), most recent first, annotated
	// with reversal linkage.
	ListForUser(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}
