package cache

import (
	"context"
	"encoding/json"
	"time"

	dom "github.com/SpyrosRoum/budgetman/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	keyAccounts = "accounts:"
	keyTags     = "tags:"
)

// BudgetCache caches per-user account and tag listings in Redis.
type BudgetCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewBudgetCache returns a new BudgetCache.
func NewBudgetCache(rdb *redis.Client, ttl time.Duration) *BudgetCache {
	return &BudgetCache{rdb: rdb, ttl: ttl}
}

// GetAccounts returns the cached account list for the user and filter, or nil
// on miss.
func (c *BudgetCache) GetAccounts(ctx context.Context, userID string, typ dom.AccountType) ([]dom.Account, error) {
	b, err := c.rdb.Get(ctx, accountsKey(userID, typ)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.Account
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetAccounts stores the account list for the user and filter. A nil list is
// stored as empty so later reads count as hits, not misses.
func (c *BudgetCache) SetAccounts(ctx context.Context, userID string, typ dom.AccountType, list []dom.Account) error {
	if list == nil {
		list = []dom.Account{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, accountsKey(userID, typ), b, c.ttl).Err()
}

// GetTags returns the cached tag list for the user, or nil on miss.
func (c *BudgetCache) GetTags(ctx context.Context, userID string) ([]dom.Tag, error) {
	b, err := c.rdb.Get(ctx, keyTags+userID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.Tag
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetTags stores the tag list for the user. A nil list is stored as empty so
// later reads count as hits, not misses.
func (c *BudgetCache) SetTags(ctx context.Context, userID string, list []dom.Tag) error {
	if list == nil {
		list = []dom.Tag{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyTags+userID, b, c.ttl).Err()
}

// InvalidateAccounts removes every cached account filter for the user
// (invalidation on write).
func (c *BudgetCache) InvalidateAccounts(ctx context.Context, userID string) error {
	return c.rdb.Del(ctx,
		accountsKey(userID, dom.AccountAny),
		accountsKey(userID, dom.AccountAdhoc),
		accountsKey(userID, dom.AccountNormal),
	).Err()
}

// InvalidateTags removes the cached tag list for the user.
func (c *BudgetCache) InvalidateTags(ctx context.Context, userID string) error {
	return c.rdb.Del(ctx, keyTags+userID).Err()
}

func accountsKey(userID string, typ dom.AccountType) string {
	return keyAccounts + userID + ":" + string(typ)
}
