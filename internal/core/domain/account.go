package domain

import (
	"github.com/shopspring/decimal"
)

// Account represents the single balance-holding entity owned by a user.
// This is the primary representation used by services.
//
// The balance is a signed fixed-point decimal with two fractional digits.
// It may go negative: withdrawals are recorded unconditionally, only
// transfers (and reversals of transfers) are balance-checked.
type Account struct {
	AccountID   string          `json:"accountID"`   // Primary Key (UUID)
	OwnerUserID string          `json:"ownerUserID"` // FK -> users.user_id, unique (one account per user)
	Balance     decimal.Decimal `json:"balance"`     // Persisted balance, mutated only by the ledger engine
	AuditFields
}
