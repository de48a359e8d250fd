package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/payroll"
	"github.com/go-redis/redis/v8"
)

// BreakdownCache stores salary responses as JSON. Each employee has an index
// set listing its keys so writes to the employee's reports can drop them all,
// and a generation counter that only ever grows. The counter has no TTL.
type BreakdownCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

func NewBreakdownCache(client *redis.Client, ttl time.Duration) *BreakdownCache {
	return &BreakdownCache{
		client: client,
		ttl:    ttl,
		prefix: "salary-calc:",
	}
}

func (c *BreakdownCache) entryKey(key string) string {
	return c.prefix + key
}

func (c *BreakdownCache) indexKey(employeeID string) string {
	return c.prefix + "employee:" + employeeID + ":keys"
}

func (c *BreakdownCache) generationKey(employeeID string) string {
	return c.prefix + "employee:" + employeeID + ":gen"
}

func (c *BreakdownCache) Generation(ctx context.Context, employeeID string) (int64, error) {
	gen, err := c.client.Get(ctx, c.generationKey(employeeID)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read breakdown generation: %w", err)
	}
	return gen, nil
}

func (c *BreakdownCache) Get(ctx context.Context, key string) (payroll.SalaryResponse, bool, error) {
	data, err := c.client.Get(ctx, c.entryKey(key)).Bytes()
	if err == redis.Nil {
		return payroll.SalaryResponse{}, false, nil
	}
	if err != nil {
		return payroll.SalaryResponse{}, false, fmt.Errorf("failed to read breakdown: %w", err)
	}

	var resp payroll.SalaryResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return payroll.SalaryResponse{}, false, fmt.Errorf("failed to decode breakdown: %w", err)
	}
	return resp, true, nil
}

func (c *BreakdownCache) Set(ctx context.Context, key string, employeeID string, value payroll.SalaryResponse) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode breakdown: %w", err)
	}

	idx := c.indexKey(employeeID)
	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, c.entryKey(key), data, c.ttl)
		pipe.SAdd(ctx, idx, c.entryKey(key))
		pipe.Expire(ctx, idx, c.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store breakdown: %w", err)
	}
	return nil
}

func (c *BreakdownCache) InvalidateEmployee(ctx context.Context, employeeID string) error {
	if err := c.client.Incr(ctx, c.generationKey(employeeID)).Err(); err != nil {
		return fmt.Errorf("failed to bump breakdown generation: %w", err)
	}

	idx := c.indexKey(employeeID)
	keys, err := c.client.SMembers(ctx, idx).Result()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("failed to list cached breakdowns: %w", err)
	}

	if err := c.client.Del(ctx, append(keys, idx)...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate breakdowns: %w", err)
	}
	return nil
}
