package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pocketledger/pocket_ledger_app/internal/platform/cache"
)

func TestGetHit(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := cache.NewBalanceCache(client, time.Minute)

	mock.ExpectGet("balance:acc-1").SetVal("42.5")

	balance, ok := c.Get(context.Background(), "acc-1")

	require.True(t, ok)
	assert.True(t, balance.Equal(decimal.NewFromFloat(42.5)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := cache.NewBalanceCache(client, time.Minute)

	mock.ExpectGet("balance:acc-1").RedisNil()

	_, ok := c.Get(context.Background(), "acc-1")

	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUnparseableValueIsAMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := cache.NewBalanceCache(client, time.Minute)

	mock.ExpectGet("balance:acc-1").SetVal("not-a-number")

	_, ok := c.Get(context.Background(), "acc-1")

	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetStoresWithTTL(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := cache.NewBalanceCache(client, time.Minute)

	mock.ExpectSet("balance:acc-1", "42.5", time.Minute).SetVal("OK")

	c.Set(context.Background(), "acc-1", decimal.NewFromFloat(42.5))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvalidateDropsAllGivenAccounts(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := cache.NewBalanceCache(client, time.Minute)

	mock.ExpectDel("balance:acc-1", "balance:acc-2").SetVal(2)

	c.Invalidate(context.Background(), "acc-1", "acc-2")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNilClientIsSafe(t *testing.T) {
	c := cache.NewBalanceCache(nil, 0)

	_, ok := c.Get(context.Background(), "acc-1")
	assert.False(t, ok)

	c.Set(context.Background(), "acc-1", decimal.NewFromFloat(1))
	c.Invalidate(context.Background(), "acc-1")
}
