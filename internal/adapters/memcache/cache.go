package memcache

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru"

	"github.com/andrescamacho/colonycore-go/internal/domain/shared"
)

// entry pairs a cached value with the tick it was written at.
type entry struct {
	value     interface{}
	writtenAt shared.Tick
}

// TickCache is an LRU-bounded, tick-TTL cache implementing the application
// layer's EphemeralCache port. Expiry is lazy: an entry older than the TTL
// is treated as absent on read and left for LRU eviction.
type TickCache struct {
	mu  sync.Mutex
	lru *lru.Cache
	ttl shared.Tick
}

// NewTickCache creates a cache holding up to size entries, each valid for
// ttl ticks after its write.
func NewTickCache(size int, ttl shared.Tick) (*TickCache, error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("cache ttl must be positive: %d", ttl)
	}
	inner, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create lru cache: %w", err)
	}
	return &TickCache{lru: inner, ttl: ttl}, nil
}

// Get returns the value for key if it was written within the TTL window.
func (c *TickCache) Get(key string, now shared.Tick) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	e := raw.(entry)
	if now.Age(e.writtenAt) >= c.ttl {
		c.lru.Remove(key)
		return nil, false
	}
	return e.value, true
}

// Put stores value under key, stamped with the current tick.
func (c *TickCache) Put(key string, value interface{}, now shared.Tick) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Add(key, entry{value: value, writtenAt: now})
}

// Clear drops every entry.
func (c *TickCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Purge()
}
