package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"

	"github.com/pocketledger/pocket_ledger_app/internal/middleware"
)

// BalanceCache is a read-through cache for account balances backed by Redis.
// A nil client disables caching, so lookups fall through to the database.
type BalanceCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBalanceCache creates a BalanceCache. The client may be nil.
func NewBalanceCache(client *redis.Client, ttl time.Duration) *BalanceCache {
	return &BalanceCache{client: client, ttl: ttl}
}

func balanceKey(accountID string) string {
	return "balance:" + accountID
}

// Get returns the cached balance for an account, or ok=false on a miss.
func (c *BalanceCache) Get(ctx context.Context, accountID string) (decimal.Decimal, bool) {
	if c == nil || c.client == nil {
		return decimal.Zero, false
	}
	val, err := c.client.Get(ctx, balanceKey(accountID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			middleware.GetLoggerFromCtx(ctx).Warn("Balance cache read failed", "account_id", accountID, "error", err)
		}
		return decimal.Zero, false
	}
	balance, err := decimal.NewFromString(val)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Balance cache held unparseable value", "account_id", accountID, "value", val)
		return decimal.Zero, false
	}
	return balance, true
}

// Set stores an account balance with the configured TTL. Failures are
// logged and swallowed since the database remains authoritative.
func (c *BalanceCache) Set(ctx context.Context, accountID string, balance decimal.Decimal) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Set(ctx, balanceKey(accountID), balance.String(), c.ttl).Err(); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Balance cache write failed", "account_id", accountID, "error", err)
	}
}

// Invalidate drops cached balances for the given accounts after a mutation.
func (c *BalanceCache) Invalidate(ctx context.Context, accountIDs ...string) {
	if c == nil || c.client == nil || len(accountIDs) == 0 {
		return
	}
	keys := make([]string, 0, len(accountIDs))
	for _, id := range accountIDs {
		keys = append(keys, balanceKey(id))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Balance cache invalidation failed", "error", err)
	}
}
