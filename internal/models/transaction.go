package models

import (
	"github.com/shopspring/decimal"
)

// TransactionType mirrors domain.TransactionType at the storage layer.
type TransactionType string

const (
	Deposit  TransactionType = "DEPOSIT"
	Withdraw TransactionType = "WITHDRAW"
	Transfer TransactionType = "TRANSFER"
	Reversal TransactionType = "REVERSAL"
)

// TransactionStatus mirrors domain.TransactionStatus at the storage layer.
type TransactionStatus string

const (
	Active   TransactionStatus = "ACTIVE"
	Reversed TransactionStatus = "REVERSED"
)

// Transaction represents a row of the transactions table.
// reversed_transaction_id carries a UNIQUE constraint so a transfer can be
// reversed at most once regardless of concurrent callers.
type Transaction struct {
	TransactionID           string            `db:"transaction_id"`
	Type                    TransactionType   `db:"transaction_type"`
	AccountID               string            `db:"account_id"`
	SenderAccountID         *string           `db:"sender_account_id"`
	ReceiverAccountID       *string           `db:"receiver_account_id"`
	Amount                  decimal.Decimal   `db:"amount"`
	Description             string            `db:"description"`
	Status                  TransactionStatus `db:"status"`
	ReversedTransactionID   *string           `db:"reversed_transaction_id"`
	ReversedByTransactionID *string           `db:"reversed_by_transaction_id"`
	AuditFields
}
