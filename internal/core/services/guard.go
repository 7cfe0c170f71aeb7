package services

import (
	"github.com/pocketledger/pocket_ledger_app/internal/core/domain"
)

// CanMutate reports whether the caller may move money on the account.
// Only the owner may.
func CanMutate(callerUserID string, account domain.Account) bool {
	return account.OwnerUserID == callerUserID
}

// CanReverse reports whether the caller may reverse the given transfer.
// Reversal is sender-only: the caller must own the account the original
// transfer was sent from. The receiver may not initiate it.
func CanReverse(callerUserID string, senderAccount domain.Account, original domain.Transaction) bool {
	if original.SenderAccountID == nil || senderAccount.AccountID != *original.SenderAccountID {
		return false
	}
	return senderAccount.OwnerUserID == callerUserID
}
