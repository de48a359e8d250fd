package memory

import (
	"context"
	"sync"
	"time"

	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/payroll"
)

type cacheEntry struct {
	employeeID string
	value      payroll.SalaryResponse
	expiresAt  time.Time
}

// BreakdownCache is a process-local payroll.BreakdownCache with a fixed TTL.
type BreakdownCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
	gens    map[string]int64
}

func NewBreakdownCache(ttl time.Duration) *BreakdownCache {
	return &BreakdownCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		gens:    make(map[string]int64),
	}
}

func (c *BreakdownCache) Get(_ context.Context, key string) (payroll.SalaryResponse, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return payroll.SalaryResponse{}, false, nil
	}
	if now().After(e.expiresAt) {
		delete(c.entries, key)
		return payroll.SalaryResponse{}, false, nil
	}
	return e.value, true, nil
}

func (c *BreakdownCache) Set(_ context.Context, key string, employeeID string, value payroll.SalaryResponse) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		employeeID: employeeID,
		value:      value,
		expiresAt:  now().Add(c.ttl),
	}
	return nil
}

func (c *BreakdownCache) Generation(_ context.Context, employeeID string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[employeeID], nil
}

func (c *BreakdownCache) InvalidateEmployee(_ context.Context, employeeID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gens[employeeID]++

	for k, e := range c.entries {
		if e.employeeID == employeeID {
			delete(c.entries, k)
		}
	}
	return nil
}

// Sweep drops expired entries and returns how many were removed.
func (c *BreakdownCache) Sweep(_ context.Context) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := now()
	removed := 0
	for k, e := range c.entries {
		if t.After(e.expiresAt) {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

// Len reports the number of stored entries, expired ones included.
func (c *BreakdownCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
