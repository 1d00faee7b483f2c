// Package cache is an in-process TTL cache bounded by entry count. When full,
// the oldest-inserted entry is evicted.
package cache

import (
	"container/list"
	"sync"
	"time"
)

const (
	DefaultTTL      = 5 * time.Minute
	DefaultCapacity = 100
)

type entry struct {
	key      string
	payload  any
	storedAt time.Time
}

type Stats struct {
	Entries     int           `json:"entries"`
	Capacity    int           `json:"capacity"`
	TTL         time.Duration `json:"ttl_ns"`
	Hits        uint64        `json:"hits"`
	Misses      uint64        `json:"misses"`
	Evictions   uint64        `json:"evictions"`
	Expirations uint64        `json:"expirations"`
}

// Cache is safe for concurrent use. Concurrent writers to the same key
// resolve last-writer-wins.
type Cache struct {
	mu       sync.Mutex
	ttl      time.Duration
	capacity int
	now      func() time.Time

	order *list.List // front = oldest insertion
	items map[string]*list.Element

	hits, misses, evictions, expirations uint64
}

// New returns a cache. Non-positive ttl or capacity fall back to the defaults;
// a nil clock means time.Now.
func New(ttl time.Duration, capacity int, clock func() time.Time) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if clock == nil {
		clock = time.Now
	}
	return &Cache{
		ttl:      ttl,
		capacity: capacity,
		now:      clock,
		order:    list.New(),
		items:    make(map[string]*list.Element),
	}
}

// Get returns the payload for key if present and not expired. An expired
// entry is removed and reported as a miss.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		c.misses++
		return nil, false
	}
	e := el.Value.(*entry)
	if c.now().Sub(e.storedAt) > c.ttl {
		c.remove(el)
		c.expirations++
		c.misses++
		return nil, false
	}
	c.hits++
	return e.payload, true
}

// Set stores payload under key. Re-setting a key refreshes its timestamp and
// makes it the newest entry.
func (c *Cache) Set(key string, payload any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.remove(el)
	}
	for c.order.Len() >= c.capacity {
		c.remove(c.order.Front())
		c.evictions++
	}
	c.items[key] = c.order.PushBack(&entry{key: key, payload: payload, storedAt: c.now()})
}

func (c *Cache) remove(el *list.Element) {
	c.order.Remove(el)
	delete(c.items, el.Value.(*entry).key)
}

// Clear drops every entry. Counters are kept.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.items = make(map[string]*list.Element)
}

func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Entries:     c.order.Len(),
		Capacity:    c.capacity,
		TTL:         c.ttl,
		Hits:        c.hits,
		Misses:      c.misses,
		Evictions:   c.evictions,
		Expirations: c.expirations,
	}
}

// Keys lists live keys from oldest to newest insertion.
func (c *Cache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]string, 0, c.order.Len())
	for el := c.order.Front(); el != nil; el = el.Next() {
		keys = append(keys, el.Value.(*entry).key)
	}
	return keys
}
