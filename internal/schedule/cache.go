package schedule

import (
	"sync"
	"time"

	"github.com/jeysiell/SinalTech/internal/models"
)

// Cache holds the last-known schedule in memory. Single writer (the
// scheduler's load path and the admin save path), many readers.
type Cache struct {
	mu        sync.RWMutex
	schedule  models.Schedule
	fetchedAt time.Time
	loaded    bool
}

func NewCache() *Cache {
	return &Cache{schedule: models.Schedule{}}
}

// Set replaces the cached schedule.
func (c *Cache) Set(s models.Schedule, at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.schedule = s
	c.fetchedAt = at
	c.loaded = true
}

// Snapshot returns a deep copy safe to read and mutate outside the lock.
func (c *Cache) Snapshot() models.Schedule {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.schedule.Clone()
}

// Loaded reports whether a schedule has ever been stored.
func (c *Cache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// FetchedAt returns when the cached schedule was last refreshed.
func (c *Cache) FetchedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fetchedAt
}
