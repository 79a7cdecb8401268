package gizmo

import (
	"image/color"
	"sync"
	"sync/atomic"
)

// resourceCache maps appearance keys to backend resources. It never evicts and does not
// remember failed creations, so the next request retries.
type resourceCache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]V
	hits    atomic.Uint64
	misses  atomic.Uint64
}

func newResourceCache[K comparable, V any]() *resourceCache[K, V] {
	return &resourceCache[K, V]{entries: make(map[K]V)}
}

// getOrCreate returns the cached value for key, calling create exactly once on a miss.
func (c *resourceCache[K, V]) getOrCreate(key K, create func() (V, error)) (V, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.entries[key]; ok {
		c.hits.Add(1)
		return v, nil
	}
	c.misses.Add(1)
	v, err := create()
	if err != nil {
		var zero V
		return zero, err
	}
	c.entries[key] = v
	return v, nil
}

func (c *resourceCache[K, V]) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// each calls fn for every cached value.
func (c *resourceCache[K, V]) each(fn func(K, V)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range c.entries {
		fn(k, v)
	}
}

func (c *resourceCache[K, V]) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}

// CacheStats reports cache effectiveness.
type CacheStats struct {
	Entries int
	Hits    uint64
	Misses  uint64
}

// MaterialCache deduplicates materials by color: one backend material per distinct
// packed RGBA value for the lifetime of the overlay.
type MaterialCache struct {
	backend Backend
	cache   *resourceCache[uint32, MaterialHandle]
}

// NewMaterialCache returns an empty cache creating materials on b.
func NewMaterialCache(b Backend) *MaterialCache {
	return &MaterialCache{backend: b, cache: newResourceCache[uint32, MaterialHandle]()}
}

// MaterialFor returns the material for c, creating it on first use.
func (mc *MaterialCache) MaterialFor(c color.RGBA) (MaterialHandle, error) {
	return mc.cache.getOrCreate(ColorKey(c), func() (MaterialHandle, error) {
		return mc.backend.CreateMaterial(c)
	})
}

// Stats returns the entry count and hit/miss counters.
func (mc *MaterialCache) Stats() CacheStats {
	return CacheStats{
		Entries: mc.cache.len(),
		Hits:    mc.cache.hits.Load(),
		Misses:  mc.cache.misses.Load(),
	}
}
