package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pocketledger/pocket_ledger_app/internal/core/domain"
)

// DepositRequest defines the data needed to record a deposit.
type DepositRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required,decimal2dp"`
	Description string          `json:"description"`
}

// WithdrawRequest defines the data needed to record a withdrawal.
type WithdrawRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required,decimal2dp"`
	Description string          `json:"description"`
}

// TransferRequest defines the data needed to transfer funds to another user,
// resolved by email.
type TransferRequest struct {
	SourceAccountID string          `json:"sourceAccountID" binding:"required"`
	TargetEmail     string          `json:"targetEmail" binding:"required,email"`
	Amount          decimal.Decimal `json:"amount" binding:"required,decimal2dp"`
	Description     string          `json:"description"`
}

// TransactionResponse defines the data returned for a single transaction.
type TransactionResponse struct {
	TransactionID           string          `json:"transactionID"`
	Type                    string          `json:"type"`
	AccountID               string          `json:"accountID"`
	SenderAccountID         *string         `json:"senderAccountID,omitempty"`
	ReceiverAccountID       *string         `json:"receiverAccountID,omitempty"`
	Amount                  decimal.Decimal `json:"amount"`
	Description             string          `json:"description"`
	Status                  string          `json:"status"`
	ReversedTransactionID   *string         `json:"reversedTransactionID,omitempty"`
	ReversedByTransactionID *string         `json:"reversedByTransactionID,omitempty"`
	CreatedAt               time.Time       `json:"createdAt"`
}

// MutationResponse is returned by deposit, withdrawal, and transfer: the
// created record plus the acting account's resulting balance.
type MutationResponse struct {
	NewBalance  decimal.Decimal     `json:"newBalance"`
	Transaction TransactionResponse `json:"transaction"`
}

// ListTransactionsParams defines query parameters for the history listing.
// Both are optional; without a limit the full history is returned.
type ListTransactionsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse wraps the ordered transaction history.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:           t.TransactionID,
		Type:                    string(t.Type),
		AccountID:               t.AccountID,
		SenderAccountID:         t.SenderAccountID,
		ReceiverAccountID:       t.ReceiverAccountID,
		Amount:                  t.Amount,
		Description:             t.Description,
		Status:                  string(t.Status),
		ReversedTransactionID:   t.ReversedTransactionID,
		ReversedByTransactionID: t.ReversedByTransactionID,
		CreatedAt:               t.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(ts []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(ts))
	for i := range ts {
		res[i] = ToTransactionResponse(&ts[i])
	}
	return res
}
