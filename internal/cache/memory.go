package cache

import (
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is an in-process Store backed by patrickmn/go-cache. It is
// the default backend for single-process deployments. Construct one
// per process and inject it; the pipeline takes a Store, so tests can
// swap in their own instance for isolation.
type Memory struct {
	inner  *gocache.Cache
	hits   atomic.Int64
	misses atomic.Int64
}

// NewMemory returns a Memory store with the given TTL. A ttl <= 0
// falls back to DefaultTTL. Expired entries are janitored at twice
// the TTL interval.
func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Memory{inner: gocache.New(ttl, 2*ttl)}
}

// Get implements Store.
func (m *Memory) Get(key string) ([]byte, bool) {
	v, ok := m.inner.Get(key)
	if !ok {
		m.misses.Add(1)
		return nil, false
	}
	payload, ok := v.([]byte)
	if !ok {
		// Foreign value under our key; treat as a miss.
		m.misses.Add(1)
		return nil, false
	}
	m.hits.Add(1)
	return payload, true
}

// Set implements Store. Overwrites any existing entry for key.
func (m *Memory) Set(key string, payload []byte) {
	m.inner.Set(key, payload, gocache.DefaultExpiration)
}

// Stats implements Store.
func (m *Memory) Stats() Stats {
	return Stats{
		Hits:    m.hits.Load(),
		Misses:  m.misses.Load(),
		Entries: m.inner.ItemCount(),
	}
}

// Clear implements Store.
func (m *Memory) Clear() {
	m.inner.Flush()
	m.hits.Store(0)
	m.misses.Store(0)
}
