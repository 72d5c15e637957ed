package text

import "sync"

// resultCache is a bounded map of detection results. When full, the entry
// that was inserted first is evicted; lookups do not refresh an entry.
type resultCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]DetectionResult
	order    []string
}

func newResultCache(capacity int) *resultCache {
	if capacity < 1 {
		capacity = 1
	}
	return &resultCache{
		capacity: capacity,
		entries:  make(map[string]DetectionResult, capacity),
		order:    make([]string, 0, capacity),
	}
}

func (c *resultCache) get(key string) (DetectionResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.entries[key]
	return r, ok
}

// put stores r under key. It returns the evicted key, if any.
func (c *resultCache) put(key string, r DetectionResult) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Two callers may race past a miss for the same key; keep the original slot.
	if _, exists := c.entries[key]; exists {
		c.entries[key] = r
		return "", false
	}

	var evicted string
	var didEvict bool
	if len(c.entries) >= c.capacity {
		evicted = c.order[0]
		c.order = c.order[1:]
		delete(c.entries, evicted)
		didEvict = true
	}

	c.entries[key] = r
	c.order = append(c.order, key)
	return evicted, didEvict
}

func (c *resultCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]DetectionResult, c.capacity)
	c.order = make([]string, 0, c.capacity)
}

func (c *resultCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
