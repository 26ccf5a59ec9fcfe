package cache

import "reflect"

// Cache records named values across frames.
type Cache struct {
	values  map[string]any
	changed bool
}

// New returns an empty Cache. The first frame always reports a change.
func New() *Cache {
	return &Cache{values: make(map[string]any)}
}

// Restart begins a new frame. Stored values are kept for comparison.
func (c *Cache) Restart() {
	c.changed = false
}

// Set assigns value to key for this frame.
func (c *Cache) Set(key string, value any) {
	prev, ok := c.values[key]
	if ok && reflect.DeepEqual(prev, value) {
		return
	}
	c.values[key] = value
	c.changed = true
}

// Changed reports whether any Set since the last Restart differed from the
// previous frame.
func (c *Cache) Changed() bool {
	return c.changed
}

// Get returns the stored value for key.
func (c *Cache) Get(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Len returns the number of keys held.
func (c *Cache) Len() int {
	return len(c.values)
}
