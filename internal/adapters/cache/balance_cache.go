package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	portsrepo "github.com/SscSPs/mybanking_app/internal/core/ports/repositories"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const (
	balanceKeyPrefix    = "mybanking:balance:"
	generationKeyPrefix = "mybanking:balance-gen:"
)

// storeIfCurrent sets KEYS[2] only while KEYS[1] still holds the generation
// the caller read. A missing generation key counts as 0.
var storeIfCurrent = redis.NewScript(`
local current = redis.call('GET', KEYS[1])
if (current or '0') ~= ARGV[1] then
	return 0
end
local ttl = tonumber(ARGV[3])
if ttl > 0 then
	redis.call('SET', KEYS[2], ARGV[2], 'PX', ttl)
else
	redis.call('SET', KEYS[2], ARGV[2])
end
return 1
`)

// RedisBalanceCache stores derived balances as decimal strings under one key per IBAN.
type RedisBalanceCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisBalanceCache returns a cache whose entries expire after ttl (0 keeps them until invalidated).
func NewRedisBalanceCache(client *redis.Client, ttl time.Duration) *RedisBalanceCache {
	return &RedisBalanceCache{client: client, ttl: ttl}
}

var _ portsrepo.BalanceCache = (*RedisBalanceCache)(nil)

func balanceKey(iban string) string {
	return balanceKeyPrefix + iban
}

func generationKey(iban string) string {
	return generationKeyPrefix + iban
}

func (c *RedisBalanceCache) GetBalance(ctx context.Context, iban string) (decimal.Decimal, bool, error) {
	raw, err := c.client.Get(ctx, balanceKey(iban)).Result()
	if errors.Is(err, redis.Nil) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("redis get balance %s: %w", iban, err)
	}
	balance, err := decimal.NewFromString(raw)
	if err != nil {
		// A corrupt entry is treated as a miss and dropped.
		_ = c.client.Del(ctx, balanceKey(iban)).Err()
		return decimal.Zero, false, nil
	}
	return balance, true, nil
}

func (c *RedisBalanceCache) Generation(ctx context.Context, iban string) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey(iban)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get balance generation %s: %w", iban, err)
	}
	return gen, nil
}

func (c *RedisBalanceCache) StoreBalance(ctx context.Context, iban string, generation int64, balance decimal.Decimal) (bool, error) {
	keys := []string{generationKey(iban), balanceKey(iban)}
	stored, err := storeIfCurrent.Run(ctx, c.client, keys,
		strconv.FormatInt(generation, 10), balance.String(), c.ttl.Milliseconds()).Int()
	if err != nil {
		return false, fmt.Errorf("redis store balance %s: %w", iban, err)
	}
	return stored == 1, nil
}

// Invalidate drops the cached balances and bumps their generations in one MULTI.
func (c *RedisBalanceCache) Invalidate(ctx context.Context, ibans ...string) error {
	var pending []string
	for _, iban := range ibans {
		if iban != "" {
			pending = append(pending, iban)
		}
	}
	if len(pending) == 0 {
		return nil
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, iban := range pending {
			pipe.Incr(ctx, generationKey(iban))
			pipe.Del(ctx, balanceKey(iban))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis invalidate balances: %w", err)
	}
	return nil
}

// NoopBalanceCache never stores anything; every read is a miss.
type NoopBalanceCache struct{}

var _ portsrepo.BalanceCache = NoopBalanceCache{}

func (NoopBalanceCache) GetBalance(context.Context, string) (decimal.Decimal, bool, error) {
	return decimal.Zero, false, nil
}

func (NoopBalanceCache) Generation(context.Context, string) (int64, error) { return 0, nil }

func (NoopBalanceCache) StoreBalance(context.Context, string, int64, decimal.Decimal) (bool, error) {
	return false, nil
}

func (NoopBalanceCache) Invalidate(context.Context, ...string) error { return nil }
