package resolver

import (
	"sync"

	"calorie-bot/internal/storage"
)

// EnergyCache maps a normalized query to its resolved kcal/100g value.
// Entries never expire: food energy values are treated as stable facts.
// Every Put rewrites the backing store.
type EnergyCache struct {
	store   storage.Store[int]
	mu      sync.Mutex
	entries map[string]int
}

func NewEnergyCache(store storage.Store[int]) *EnergyCache {
	return &EnergyCache{
		store:   store,
		entries: store.Load(),
	}
}

func (c *EnergyCache) Get(query string) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	kcal, ok := c.entries[query]
	return kcal, ok
}

// Put records a resolved value and persists the full cache immediately.
// Overwrites any prior value for the same query.
func (c *EnergyCache) Put(query string, kcal int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[query] = kcal
	return c.store.Save(c.entries)
}
