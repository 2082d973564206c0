package cache

import (
	"container/list"
	"sync"
	"time"
)

// entry is the payload stored in each list element.
type entry[K comparable, V any] struct {
	key       K
	value     V
	expiresAt time.Time // zero means no expiration
}

// LRUCache is a thread-safe, fixed-capacity cache with least recently used
// eviction and optional per-entry expiration.
type LRUCache[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	items    map[K]*list.Element
	order    *list.List // front = most recently used
	onEvict  func(key K, value V)
	now      func() time.Time
}

// Option configures an LRUCache.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the time source used for expiration checks.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// NewLRUCache creates a cache holding at most capacity items.
// A capacity below 1 is treated as 1.
func NewLRUCache[K comparable, V any](capacity int, opts ...Option) *LRUCache[K, V] {
	if capacity < 1 {
		capacity = 1
	}
	o := &options{now: time.Now}
	for _, opt := range opts {
		opt(o)
	}
	return &LRUCache[K, V]{
		capacity: capacity,
		items:    make(map[K]*list.Element, capacity),
		order:    list.New(),
		now:      o.now,
	}
}

// SetEvictCallback registers a function called when an item is evicted for
// capacity or expiration. Explicit Remove and Clear do not trigger it.
func (c *LRUCache[K, V]) SetEvictCallback(fn func(key K, value V)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onEvict = fn
}

// Get returns the value for key and marks it as recently used.
// Expired entries are dropped and reported as missing.
func (c *LRUCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	el, ok := c.items[key]
	if !ok {
		return zero, false
	}
	e := el.Value.(*entry[K, V])
	if c.expired(e) {
		c.removeElement(el, true)
		return zero, false
	}
	c.order.MoveToFront(el)
	return e.value, true
}

// Put stores value without expiration.
func (c *LRUCache[K, V]) Put(key K, value V) {
	c.PutWithTTL(key, value, 0)
}

// PutWithTTL stores value that expires after ttl. A non-positive ttl never expires.
func (c *LRUCache[K, V]) PutWithTTL(key K, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = c.now().Add(ttl)
	}

	if el, ok := c.items[key]; ok {
		e := el.Value.(*entry[K, V])
		e.value = value
		e.expiresAt = expiresAt
		c.order.MoveToFront(el)
		return
	}

	el := c.order.PushFront(&entry[K, V]{key: key, value: value, expiresAt: expiresAt})
	c.items[key] = el

	if c.order.Len() > c.capacity {
		if oldest := c.order.Back(); oldest != nil {
			c.removeElement(oldest, true)
		}
	}
}

// Remove deletes key and returns the value it held.
func (c *LRUCache[K, V]) Remove(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	el, ok := c.items[key]
	if !ok {
		return zero, false
	}
	e := c.removeElement(el, false)
	return e.value, true
}

// RemoveFunc deletes every key for which match returns true and reports how
// many were removed.
func (c *LRUCache[K, V]) RemoveFunc(match func(key K) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, el := range c.items {
		if match(key) {
			c.removeElement(el, false)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored items, including expired ones not yet collected.
func (c *LRUCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Clear removes all items.
func (c *LRUCache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.items)
	c.order.Init()
}

func (c *LRUCache[K, V]) expired(e *entry[K, V]) bool {
	return !e.expiresAt.IsZero() && !c.now().Before(e.expiresAt)
}

// removeElement must be called with c.mu held.
func (c *LRUCache[K, V]) removeElement(el *list.Element, evicted bool) *entry[K, V] {
	e := c.order.Remove(el).(*entry[K, V])
	delete(c.items, e.key)
	if evicted && c.onEvict != nil {
		c.onEvict(e.key, e.value)
	}
	return e
}
