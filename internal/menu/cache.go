package menu

import (
	"sync"
	"time"
)

// availableCache holds the last loaded list of available dishes.
type availableCache struct {
	ttl time.Duration

	mu         sync.RWMutex
	dishes     []Dish
	fetchedAt  time.Time
	valid      bool
	generation uint64
}

func newAvailableCache(ttl time.Duration) *availableCache {
	return &availableCache{ttl: ttl}
}

func (c *availableCache) get() ([]Dish, bool) {
	if c.ttl <= 0 {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.valid && time.Since(c.fetchedAt) < c.ttl {
		return c.dishes, true
	}
	return nil, false
}

// begin returns the generation a loader must hand back to set.
func (c *availableCache) begin() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generation
}

// set stores dishes loaded since begin returned gen. A list read before an
// invalidate is dropped.
func (c *availableCache) set(dishes []Dish, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return false
	}
	c.dishes = dishes
	c.fetchedAt = time.Now()
	c.valid = true
	return true
}

// invalidate must be called on any dish create/update/delete.
func (c *availableCache) invalidate() {
	c.mu.Lock()
	c.dishes = nil
	c.valid = false
	c.generation++
	c.mu.Unlock()
}
