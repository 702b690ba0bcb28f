package chat

// seenCache remembers recently seen message IDs so reconnects and
// overlapping poll windows do not replay messages into the queues.
// Oldest entries are evicted first once the cap is reached.
// Not safe for concurrent use; each Source owns its own cache.
type seenCache struct {
	maxLen int
	order  []string
	set    map[string]struct{}
}

func newSeenCache(maxLen int) *seenCache {
	if maxLen < 1 {
		maxLen = 1
	}
	return &seenCache{
		maxLen: maxLen,
		set:    make(map[string]struct{}, maxLen),
	}
}

// Add marks key as seen and reports whether it was new.
func (c *seenCache) Add(key string) bool {
	if _, ok := c.set[key]; ok {
		return false
	}
	if len(c.order) >= c.maxLen {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.set, oldest)
	}
	c.order = append(c.order, key)
	c.set[key] = struct{}{}
	return true
}

// Len returns the number of remembered keys.
func (c *seenCache) Len() int {
	return len(c.set)
}
