package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

type entry struct {
	key      string
	payload  []byte
	storedAt time.Time
	ttl      time.Duration
}

// MemoryCache is an in-process TTL cache. A non-zero maxEntries bounds it:
// inserting beyond the bound evicts the least recently used entry.
type MemoryCache struct {
	mu         sync.Mutex
	entries    map[string]*list.Element
	lru        *list.List // front = most recently used
	maxEntries int
	now        func() time.Time
}

func NewMemoryCache(maxEntries int) *MemoryCache {
	return &MemoryCache{
		entries:    make(map[string]*list.Element),
		lru:        list.New(),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	e := el.Value.(*entry)
	if c.now().Sub(e.storedAt) >= e.ttl {
		// Lazy eviction on read; there is no background sweep.
		c.lru.Remove(el)
		delete(c.entries, key)
		return nil, false
	}
	c.lru.MoveToFront(el)
	return e.payload, true
}

func (c *MemoryCache) Set(_ context.Context, key string, payload []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		e := el.Value.(*entry)
		e.payload = payload
		e.storedAt = c.now()
		e.ttl = ttl
		c.lru.MoveToFront(el)
		return
	}

	c.entries[key] = c.lru.PushFront(&entry{
		key:      key,
		payload:  payload,
		storedAt: c.now(),
		ttl:      ttl,
	})

	if c.maxEntries > 0 && c.lru.Len() > c.maxEntries {
		oldest := c.lru.Back()
		if oldest != nil {
			c.lru.Remove(oldest)
			delete(c.entries, oldest.Value.(*entry).key)
		}
	}
}

func (c *MemoryCache) Clear(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*list.Element)
	c.lru.Init()
}

// Len reports the number of entries, counting any not yet lazily evicted.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}
