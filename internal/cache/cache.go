// Package cache provides process-lifetime memoization for pipeline inputs
package cache

import "sync"

// Keyed memoizes the output of a pure function of its key. Entries live
// for the process lifetime and are never invalidated; the inputs (file
// path, identifier list) are expected to be stable within one session.
// Failed computations are not stored, so a later call retries.
type Keyed[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]V
}

// New creates an empty keyed cache.
func New[K comparable, V any]() *Keyed[K, V] {
	return &Keyed[K, V]{
		entries: make(map[K]V),
	}
}

// GetOrCompute returns the cached value for key, computing and storing it
// on first use. Concurrent callers serialize so the computation runs at
// most once per key.
func (c *Keyed[K, V]) GetOrCompute(key K, compute func() (V, error)) (V, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.entries[key]; ok {
		return v, nil
	}

	v, err := compute()
	if err != nil {
		var zero V
		return zero, err
	}

	c.entries[key] = v
	return v, nil
}

// Len returns the number of cached entries.
func (c *Keyed[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
