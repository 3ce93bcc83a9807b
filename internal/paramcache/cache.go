// Package paramcache holds the last known value of each integer audio
// parameter so that repeated writes and echoed notifications can be dropped.
package paramcache

import "github.com/roadrover/ivi-audio/internal/models"

// Cache maps parameter ids to their last observed value.
// An id is present only once a value has been observed for it; absence means
// unknown, not zero.
//
// Cache does no locking. Callers that share it between goroutines must
// serialize access themselves.
type Cache struct {
	values map[models.ParamID]int
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{values: make(map[models.ParamID]int)}
}

// Observe records value for id and reports whether it differs from what was
// known. The first observation of an id always reports a change.
func (c *Cache) Observe(id models.ParamID, value int) bool {
	if old, ok := c.values[id]; ok && old == value {
		return false
	}
	c.values[id] = value
	return true
}

// Get returns the cached value for id, if any.
func (c *Cache) Get(id models.ParamID) (int, bool) {
	v, ok := c.values[id]
	return v, ok
}

// Clear forgets every value.
func (c *Cache) Clear() {
	clear(c.values)
}

// Len returns the number of known parameters.
func (c *Cache) Len() int {
	return len(c.values)
}
