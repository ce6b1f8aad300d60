package cache

import (
	"sync"
)

// RowCache defines a generic interface for caching encoded document rows.
type RowCache interface {
	// Get retrieves a copy of a row from the cache.
	Get(key string) ([]float64, bool)
	// CopyInto copies a cached row directly into dst. It reports false
	// if the key is absent or the cached row length does not match dst.
	CopyInto(key string, dst []float64) bool
	// Put stores a row in the cache.
	Put(key string, row []float64)
	// Size returns the number of items in the cache.
	Size() int
}

// MapCache is a simple in-memory implementation of RowCache.
type MapCache struct {
	data map[string][]float64
	mu   sync.RWMutex
}

func NewMapCache() *MapCache {
	return &MapCache{
		data: make(map[string][]float64),
	}
}

func (c *MapCache) Get(key string) ([]float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	// Return copy to avoid modification of cached value
	if v, ok := c.data[key]; ok {
		dst := make([]float64, len(v))
		copy(dst, v)
		return dst, true
	}
	return nil, false
}

func (c *MapCache) CopyInto(key string, dst []float64) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.data[key]
	if !ok || len(v) != len(dst) {
		return false
	}
	copy(dst, v)
	return true
}

func (c *MapCache) Put(key string, row []float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Store copy
	dst := make([]float64, len(row))
	copy(dst, row)
	c.data[key] = dst
}

func (c *MapCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
