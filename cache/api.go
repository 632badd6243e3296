// Package cache defines the capability every eviction engine in this module
// implements. It carries no policy logic itself — see lru, lfu, lruk, arc,
// and sharded for the concrete engines.
package cache

// Cache is a bounded key/value cache. All methods are safe for concurrent
// use by multiple goroutines; a concrete engine serializes them behind its
// own mutex (or, for the sharded wrapper, behind whichever shard's mutex
// owns the key).
//
// Typical complexity is O(1) per operation; LFU's aging pass (triggered
// only when the running average frequency exceeds its configured ceiling)
// is the one path that is O(size) instead, and is documented as such on
// lfu.Engine.
type Cache[K comparable, V any] interface {
	// Put stores or overwrites key→value.
	Put(key K, value V)

	// Get retrieves the value for key and reports whether it was present.
	// A hit promotes the entry according to the engine's policy.
	Get(key K) (V, bool)

	// GetOrZero is a convenience wrapper around Get for callers that don't
	// need to distinguish "absent" from "present with the zero value".
	GetOrZero(key K) V

	// Remove deletes key if present and reports whether it was present.
	Remove(key K) bool

	// Len reports the number of resident entries.
	Len() int

	// Purge drops every resident entry (and, where applicable, ghost
	// entries) and resets internal counters.
	Purge()
}
