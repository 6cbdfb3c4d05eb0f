package cache

import (
	"sync"
	"time"
)

// Cache is a thread-safe key-value store with optional per-key expiry.
type Cache struct {
	m sync.Map
	// now is swapped in tests
	now func() time.Time
}

// NewCache creates a new Cache instance.
func NewCache() *Cache {
	return &Cache{now: time.Now}
}

// cacheItem holds a value and its expiration time.
type cacheItem struct {
	Value     interface{}
	ExpiresAt int64 // Unix timestamp in nanoseconds; 0 means no expiration
}

func (c *Cache) expired(item cacheItem) bool {
	return item.ExpiresAt > 0 && c.now().UnixNano() > item.ExpiresAt
}

// Set stores a value for a key. A ttl of 0 means the value does not expire.
func (c *Cache) Set(key string, value interface{}, ttl time.Duration) {
	var expiresAt int64
	if ttl > 0 {
		expiresAt = c.now().Add(ttl).UnixNano()
	}
	c.m.Store(key, cacheItem{Value: value, ExpiresAt: expiresAt})
}

// Get retrieves a value for a key. Returns (value, true) if found and not expired, (nil, false) otherwise.
func (c *Cache) Get(key string) (interface{}, bool) {
	v, ok := c.m.Load(key)
	if !ok {
		return nil, false
	}
	item := v.(cacheItem)
	if c.expired(item) {
		c.m.Delete(key)
		return nil, false
	}
	return item.Value, true
}

// GetOrDefault returns the value for key if found, otherwise defaultValue.
func (c *Cache) GetOrDefault(key string, defaultValue interface{}) interface{} {
	if v, ok := c.Get(key); ok {
		return v
	}
	return defaultValue
}

// Delete removes a key from the cache.
func (c *Cache) Delete(key string) {
	c.m.Delete(key)
}

// DeleteMany removes multiple keys from the cache.
func (c *Cache) DeleteMany(keys ...string) {
	for _, key := range keys {
		c.m.Delete(key)
	}
}

// PurgeExpired drops every expired entry and returns how many were removed.
func (c *Cache) PurgeExpired() int {
	n := 0
	c.m.Range(func(key, value interface{}) bool {
		if c.expired(value.(cacheItem)) {
			c.m.Delete(key)
			n++
		}
		return true
	})
	return n
}

// Len counts live entries.
func (c *Cache) Len() int {
	n := 0
	c.m.Range(func(_, value interface{}) bool {
		if !c.expired(value.(cacheItem)) {
			n++
		}
		return true
	})
	return n
}
