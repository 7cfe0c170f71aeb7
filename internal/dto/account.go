package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pocketledger/pocket_ledger_app/internal/core/domain"
)

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID   string          `json:"accountID"`
	OwnerUserID string          `json:"ownerUserID"`
	Balance     decimal.Decimal `json:"balance"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:   acc.AccountID,
		OwnerUserID: acc.OwnerUserID,
		Balance:     acc.Balance,
		CreatedAt:   acc.CreatedAt,
	}
}
