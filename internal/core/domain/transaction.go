package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TransactionType identifies the financial event a transaction records.
type TransactionType string

const (
	Deposit  TransactionType = "DEPOSIT"
	Withdraw TransactionType = "WITHDRAW"
	Transfer TransactionType = "TRANSFER"
	Reversal TransactionType = "REVERSAL"
)

// TransactionStatus tracks the reversal lifecycle of a TRANSFER.
// Only transfers ever leave ACTIVE; every other type is terminal on creation.
type TransactionStatus string

const (
	Active   TransactionStatus = "ACTIVE"
	Reversed TransactionStatus = "REVERSED"
)

// Transaction is an immutable ledger record of one financial event.
//
// Amount is always positive; direction is carried by the type and the
// sender/receiver roles, never by sign. Which role fields are set depends
// on the type: a DEPOSIT fills only the receiver, a WITHDRAW only the
// sender, TRANSFER and REVERSAL fill both. Use the New* constructors so
// invalid combinations cannot be built.
type Transaction struct {
	TransactionID     string            `json:"transactionID"` // Primary Key (UUID)
	Type              TransactionType   `json:"type"`
	AccountID         string            `json:"accountID"` // Filing account: the acting account, or the source for transfers
	SenderAccountID   *string           `json:"senderAccountID,omitempty"`
	ReceiverAccountID *string           `json:"receiverAccountID,omitempty"`
	Amount            decimal.Decimal   `json:"amount"` // Always > 0, never mutated after creation
	Description       string            `json:"description"`
	Status            TransactionStatus `json:"status"`

	// ReversedTransactionID links a REVERSAL to the TRANSFER it undoes.
	ReversedTransactionID *string `json:"reversedTransactionID,omitempty"`
	// ReversedByTransactionID is the back-link set on a TRANSFER once it has
	// been reversed. At most one reversal may ever reference a transfer.
	ReversedByTransactionID *string `json:"reversedByTransactionID,omitempty"`

	AuditFields
}

// NewDeposit builds a DEPOSIT filed under the acting account, which is also
// the receiver of the funds.
func NewDeposit(id, accountID string, amount decimal.Decimal, description string) Transaction {
	recv := accountID
	return Transaction{
		TransactionID:     id,
		Type:              Deposit,
		AccountID:         accountID,
		ReceiverAccountID: &recv,
		Amount:            amount,
		Description:       description,
		Status:            Active,
	}
}

// NewWithdraw builds a WITHDRAW filed under the acting account, which is the
// sender of the funds.
func NewWithdraw(id, accountID string, amount decimal.Decimal, description string) Transaction {
	sender := accountID
	return Transaction{
		TransactionID:   id,
		Type:            Withdraw,
		AccountID:       accountID,
		SenderAccountID: &sender,
		Amount:          amount,
		Description:     description,
		Status:          Active,
	}
}

// NewTransfer builds a TRANSFER filed under the source account.
func NewTransfer(id, sourceAccountID, targetAccountID string, amount decimal.Decimal, description string) Transaction {
	sender := sourceAccountID
	recv := targetAccountID
	return Transaction{
		TransactionID:     id,
		Type:              Transfer,
		AccountID:         sourceAccountID,
		SenderAccountID:   &sender,
		ReceiverAccountID: &recv,
		Amount:            amount,
		Description:       description,
		Status:            Active,
	}
}

// NewReversal builds the REVERSAL undoing the given transfer. Sender and
// receiver are the original's, swapped: the reversal is a transfer flowing
// backward. It is filed under the original sender's account.
func NewReversal(id string, original Transaction, description string) Transaction {
	origID := original.TransactionID
	return Transaction{
		TransactionID:         id,
		Type:                  Reversal,
		AccountID:             *original.SenderAccountID,
		SenderAccountID:       original.ReceiverAccountID,
		ReceiverAccountID:     original.SenderAccountID,
		Amount:                original.Amount,
		Description:           description,
		Status:                Active,
		ReversedTransactionID: &origID,
	}
}

// IsReversed reports whether a reversal already references this transaction.
func (t Transaction) IsReversed() bool {
	return t.Status == Reversed || t.ReversedByTransactionID != nil
}

// Validate checks the structural invariants of a transaction record: a
// positive amount and exactly the role fields its type requires.
func (t Transaction) Validate() error {
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("transaction amount must be positive, got %s", t.Amount)
	}
	switch t.Type {
	case Deposit:
		if t.SenderAccountID != nil {
			return fmt.Errorf("deposit must not carry a sender account")
		}
		if t.ReceiverAccountID == nil || *t.ReceiverAccountID != t.AccountID {
			return fmt.Errorf("deposit receiver must be the filing account")
		}
	case Withdraw:
		if t.ReceiverAccountID != nil {
			return fmt.Errorf("withdrawal must not carry a receiver account")
		}
		if t.SenderAccountID == nil || *t.SenderAccountID != t.AccountID {
			return fmt.Errorf("withdrawal sender must be the filing account")
		}
	case Transfer:
		if t.SenderAccountID == nil || t.ReceiverAccountID == nil {
			return fmt.Errorf("transfer must carry both sender and receiver accounts")
		}
		if *t.SenderAccountID == *t.ReceiverAccountID {
			return fmt.Errorf("transfer sender and receiver must differ")
		}
	case Reversal:
		if t.SenderAccountID == nil || t.ReceiverAccountID == nil {
			return fmt.Errorf("reversal must carry both sender and receiver accounts")
		}
		if t.ReversedTransactionID == nil {
			return fmt.Errorf("reversal must reference the transaction it reverses")
		}
	default:
		return fmt.Errorf("unknown transaction type %q", t.Type)
	}
	if t.Type != Reversal && t.ReversedTransactionID != nil {
		return fmt.Errorf("only reversals may reference another transaction")
	}
	return nil
}
