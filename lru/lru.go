// Package lru implements a classic move-to-front Least-Recently-Used cache:
// O(1) get/put/remove via a key→node map plus an intrusive MRU↔LRU list.
//
// Grounded on the teacher's policy/lru/lru.go admission/promotion rules
// (push-front on add, move-to-front on get/update) and the list mechanics
// of its cache/shard.go, generalized here into a standalone engine built on
// internal/entry.List rather than a policy plugged into a shared shard type.
package lru

import (
	"sync"

	"github.com/kvcache/cachekit/cache"
	"github.com/kvcache/cachekit/internal/entry"
)

// Engine is a bounded, thread-safe LRU cache. It also serves as the
// building block for lruk's history list and for sharded.NewShardedLRU's per-shard
// instances.
type Engine[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	m        map[K]*entry.Node[K, V]
	list     *entry.List[K, V]
}

// New constructs an LRU cache holding at most capacity entries.
// A non-positive capacity is legal: every Put becomes a no-op, per §4.1.
func New[K comparable, V any](capacity int) *Engine[K, V] {
	return &Engine[K, V]{
		capacity: capacity,
		m:        make(map[K]*entry.Node[K, V]),
		list:     entry.New[K, V](),
	}
}

var _ cache.Cache[int, int] = (*Engine[int, int])(nil)

// Put stores or overwrites key→value, promoting it to most-recent.
func (e *Engine[K, V]) Put(key K, value V) {
	if e.capacity <= 0 {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if n, ok := e.m[key]; ok {
		n.Value = value
		e.list.MoveToFront(n)
		return
	}

	if len(e.m) >= e.capacity {
		e.evictLocked()
	}

	n := &entry.Node[K, V]{Key: key, Value: value, AccessCount: 1}
	e.m[key] = n
	e.list.PushFront(n)
}

// Get returns the value for key and promotes it to most-recent on hit.
func (e *Engine[K, V]) Get(key K) (V, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	n, ok := e.m[key]
	if !ok {
		var zero V
		return zero, false
	}
	n.AccessCount++
	e.list.MoveToFront(n)
	return n.Value, true
}

// GetOrZero returns the value for key, or the zero value of V if absent.
func (e *Engine[K, V]) GetOrZero(key K) V {
	v, _ := e.Get(key)
	return v
}

// Remove deletes key if present and reports whether it was present.
func (e *Engine[K, V]) Remove(key K) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	n, ok := e.m[key]
	if !ok {
		return false
	}
	n.Remove()
	delete(e.m, key)
	return true
}

// Len reports the number of resident entries.
func (e *Engine[K, V]) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.m)
}

// Purge drops every resident entry.
func (e *Engine[K, V]) Purge() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.m = make(map[K]*entry.Node[K, V])
	e.list = entry.New[K, V]()
}

// evictLocked removes the least-recently-used entry. Callers must hold mu
// and must have already verified the cache is at capacity.
func (e *Engine[K, V]) evictLocked() {
	victim := e.list.Back()
	if victim == nil {
		return
	}
	victim.Remove()
	delete(e.m, victim.Key)
}
