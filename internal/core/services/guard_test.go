package services_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/pocketledger/pocket_ledger_app/internal/core/domain"
	"github.com/pocketledger/pocket_ledger_app/internal/core/services"
)

func TestCanMutate(t *testing.T) {
	account := domain.Account{AccountID: "acc-1", OwnerUserID: "user-1"}

	assert.True(t, services.CanMutate("user-1", account))
	assert.False(t, services.CanMutate("user-2", account))
	assert.False(t, services.CanMutate("", account))
}

func TestCanReverse(t *testing.T) {
	senderAccount := domain.Account{AccountID: "acc-sender", OwnerUserID: "user-sender"}
	transfer := domain.NewTransfer("txn-1", "acc-sender", "acc-receiver", decimal.NewFromFloat(10), "")

	assert.True(t, services.CanReverse("user-sender", senderAccount, transfer))

	// The receiver must not be able to reverse, even with the sender's
	// account record in hand.
	assert.False(t, services.CanReverse("user-receiver", senderAccount, transfer))

	// A mismatched account record never authorizes anyone.
	wrongAccount := domain.Account{AccountID: "acc-other", OwnerUserID: "user-sender"}
	assert.False(t, services.CanReverse("user-sender", wrongAccount, transfer))
}

func TestCanReverseWithoutSender(t *testing.T) {
	senderAccount := domain.Account{AccountID: "acc-1", OwnerUserID: "user-1"}
	deposit := domain.NewDeposit("txn-1", "acc-1", decimal.NewFromFloat(10), "")

	assert.False(t, services.CanReverse("user-1", senderAccount, deposit))
}
