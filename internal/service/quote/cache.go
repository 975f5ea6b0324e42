package quote

import (
	"sync"
	"time"
)

// quoteCache TTL 行情缓存, 进程级共享, 并发安全
type quoteCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]Quote
}

func newQuoteCache(ttl time.Duration) *quoteCache {
	return &quoteCache{
		ttl:     ttl,
		entries: make(map[string]Quote),
	}
}

func (c *quoteCache) Get(symbol string, now time.Time) (Quote, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	q, ok := c.entries[symbol]
	if !ok {
		return Quote{}, false
	}
	if now.Sub(q.FetchedAt) >= c.ttl {
		return Quote{}, false
	}
	return q, true
}

func (c *quoteCache) Set(q Quote) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[q.Symbol] = q
}
