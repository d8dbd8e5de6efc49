package cache

import (
	"context"
	"sync"
	"time"

	"github.com/geocoder89/fintrack/internal/domain/transaction"
)

// SummaryCache holds per-user income/expense totals so the pie chart
// endpoint does not hit the store on every render. Best effort: a miss or
// a cache failure just means recomputing from the store.
type SummaryCache interface {
	Get(ctx context.Context, userID string) (transaction.Summary, bool)
	Set(ctx context.Context, userID string, s transaction.Summary)
	Invalidate(ctx context.Context, userID string)
}

type memEntry struct {
	val transaction.Summary
	exp time.Time
}

// Memory is the in-process fallback when no redis address is configured.
type Memory struct {
	mu  sync.RWMutex
	ttl time.Duration
	m   map[string]memEntry
}

func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}

	return &Memory{
		ttl: ttl,
		m:   make(map[string]memEntry),
	}
}

func (c *Memory) Get(ctx context.Context, userID string) (transaction.Summary, bool) {
	now := time.Now()
	c.mu.RLock()
	e, ok := c.m[userID]
	c.mu.RUnlock()
	if !ok {
		return transaction.Summary{}, false
	}

	if now.After(e.exp) {
		c.mu.Lock()
		delete(c.m, userID)
		c.mu.Unlock()
		return transaction.Summary{}, false
	}

	return e.val, true
}

func (c *Memory) Set(ctx context.Context, userID string, s transaction.Summary) {
	c.mu.Lock()
	c.m[userID] = memEntry{val: s, exp: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

func (c *Memory) Invalidate(ctx context.Context, userID string) {
	c.mu.Lock()
	delete(c.m, userID)
	c.mu.Unlock()
}
