package cache

import (
	"encoding/json"
	"strings"
	"sync"
	"time"
)

type item struct {
	value      interface{}
	expiration int64
}

// Cache is an in-process TTL cache used for product read paths. Handlers
// receive an instance explicitly; there is no package-level singleton.
type Cache struct {
	items map[string]item
	mu    sync.RWMutex
	ttl   time.Duration
}

// New creates a cache with the given default TTL and starts the
// background cleanup loop.
func New(defaultTTL time.Duration) *Cache {
	c := &Cache{
		items: make(map[string]item),
		ttl:   defaultTTL,
	}
	go c.cleanupExpired()
	return c
}

// Set stores a value, optionally overriding the default TTL.
func (c *Cache) Set(key string, value interface{}, ttl ...time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	duration := c.ttl
	if len(ttl) > 0 {
		duration = ttl[0]
	}

	c.items[key] = item{
		value:      value,
		expiration: time.Now().Add(duration).UnixNano(),
	}
}

// GetValue returns a cached value if present and not expired.
func (c *Cache) GetValue(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	it, found := c.items[key]
	if !found {
		return nil, false
	}

	if time.Now().UnixNano() > it.expiration {
		return nil, false
	}

	return it.value, true
}

// Delete removes a single key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// DeleteByPrefix removes every key starting with prefix.
func (c *Cache) DeleteByPrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.items {
		if strings.HasPrefix(key, prefix) {
			delete(c.items, key)
		}
	}
}

// Clear drops everything.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]item)
}

// Size returns the number of cached items, expired or not.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Marshal serializes value as JSON and caches the bytes.
func (c *Cache) Marshal(key string, value interface{}, ttl ...time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.Set(key, data, ttl...)
	return nil
}

// Unmarshal decodes a cached JSON value into target. The bool reports
// whether the key was present.
func (c *Cache) Unmarshal(key string, target interface{}) (bool, error) {
	data, found := c.GetValue(key)
	if !found {
		return false, nil
	}

	bytes, ok := data.([]byte)
	if !ok {
		return false, nil
	}

	if err := json.Unmarshal(bytes, target); err != nil {
		return false, err
	}

	return true, nil
}

func (c *Cache) cleanupExpired() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := time.Now().UnixNano()
		for key, it := range c.items {
			if now > it.expiration {
				delete(c.items, key)
			}
		}
		c.mu.Unlock()
	}
}
