// Package cache provides a thread-safe, generic LRU cache with optional
// per-entry expiration.
//
// # Usage
//
//	import "github.com/abdosaeedelhassan/email-templates/core/cache"
//
//	c := cache.NewLRUCache[string, *Template](500)
//
//	// Store with a time-to-live
//	c.PutWithTTL("emailtemplate:user-welcome:en_GB", tpl, time.Hour)
//
//	if tpl, found := c.Get("emailtemplate:user-welcome:en_GB"); found {
//		// cache hit
//	}
//
//	// Drop every locale of one template key
//	c.RemoveFunc(func(k string) bool {
//		return strings.HasPrefix(k, "emailtemplate:user-welcome:")
//	})
//
// # Eviction
//
// When capacity is reached the least recently used item is evicted. Expired
// items are dropped lazily on Get. SetEvictCallback observes both kinds of
// eviction; explicit Remove, RemoveFunc and Clear do not invoke it.
//
// # Thread Safety
//
// All methods are safe for concurrent use. Get, Put and Remove are O(1);
// RemoveFunc is O(n).
package cache
