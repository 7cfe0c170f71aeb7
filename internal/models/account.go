package models

import (
	"github.com/shopspring/decimal"
)

// Account represents a row of the accounts table.
// owner_user_id carries a UNIQUE constraint: one account per user.
type Account struct {
	AccountID   string          `db:"account_id"`
	OwnerUserID string          `db:"owner_user_id"`
	Balance     decimal.Decimal `db:"balance"`
	AuditFields
}
