// Package cache holds the in-memory item collection for the active session.
// It is the single source of truth the presentation layer reads; remote
// operations reconcile into it through the sync service.
package cache

import (
	"sync"

	"github.com/GrandCart/PantryPlus2/internal/domain"
)

// Cache is a mutex-guarded, insertion-ordered collection of items for one
// user. The epoch counter implements stale-load discard: Clear and full
// replacements bump it, and ReplaceAllAt refuses to commit a load that
// started before the most recent session change.
type Cache struct {
	mu    sync.Mutex
	items []domain.InventoryItem
	index map[string]int
	epoch uint64
}

func New() *Cache {
	return &Cache{index: make(map[string]int)}
}

// All returns a snapshot copy in insertion order.
func (c *Cache) All() []domain.InventoryItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.InventoryItem, len(c.items))
	copy(out, c.items)
	return out
}

// ByID returns the item with the given identifier, if present.
func (c *Cache) ByID(id string) (domain.InventoryItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i, ok := c.index[id]
	if !ok {
		return domain.InventoryItem{}, false
	}
	return c.items[i], true
}

// Len returns the number of cached items.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Upsert inserts the item, or replaces the existing entry with the same ID.
// Replacement keeps the original position; inserts append.
func (c *Cache) Upsert(item domain.InventoryItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i, ok := c.index[item.ID]; ok {
		c.items[i] = item
		return
	}
	c.index[item.ID] = len(c.items)
	c.items = append(c.items, item)
}

// Remove deletes the item with the given ID, if present.
func (c *Cache) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i, ok := c.index[id]
	if !ok {
		return
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	delete(c.index, id)
	for j := i; j < len(c.items); j++ {
		c.index[c.items[j].ID] = j
	}
}

// ReplaceAll swaps the whole collection, invalidating in-flight loads.
func (c *Cache) ReplaceAll(items []domain.InventoryItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.replaceLocked(items)
}

// Clear empties the cache and invalidates in-flight loads, returning the new
// epoch. Called on sign-out and before a load for a different user starts;
// the caller threads the returned epoch into that load so the snapshot and
// the clear cannot be separated by another session change.
func (c *Cache) Clear() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.replaceLocked(nil)
	return c.epoch
}

// Epoch returns the current epoch. A load snapshots it before fetching and
// hands it back to ReplaceAllAt.
func (c *Cache) Epoch() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.epoch
}

// ReplaceAllAt commits a full replacement only if the epoch still matches,
// reporting whether it did. The check and the swap share one critical
// section, so a session change can never interleave between them.
func (c *Cache) ReplaceAllAt(epoch uint64, items []domain.InventoryItem) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch {
		return false
	}
	c.replaceLocked(items)
	return true
}

func (c *Cache) replaceLocked(items []domain.InventoryItem) {
	c.epoch++
	c.items = make([]domain.InventoryItem, len(items))
	copy(c.items, items)
	c.index = make(map[string]int, len(items))
	for i, item := range c.items {
		c.index[item.ID] = i
	}
}
