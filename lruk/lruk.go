// Package lruk implements an LRU-K admission filter: a key must be touched
// k times — by Get or Put, sharing one counter — before it is promoted into
// the primary cache; until then its touches are only tracked in a history
// list of bounded size.
//
// Grounded on original_source/kLruCache.h's historyList_/historyMap_ split
// from the primary LruCache, rebuilt here over two lru.Engine instances
// (history and primary) instead of a second hand-rolled list, and resolving
// the pre/post-increment ambiguity the source itself left latent exactly as
// recorded in SPEC_FULL.md §4.3: one shared counter, incremented before the
// comparison, admitting on the Put whose new count reaches k.
package lruk

import (
	"sync"

	"github.com/kvcache/cachekit/cache"
	"github.com/kvcache/cachekit/lru"
)

// Engine is a bounded, thread-safe LRU-K cache.
type Engine[K comparable, V any] struct {
	mu sync.Mutex

	k       int
	primary *lru.Engine[K, V]
	history *lru.Engine[K, uint64] // key -> touch count, capped at historyCapacity

	// pending holds the most recent value offered by Put for a key that has
	// not yet been promoted; the Put whose touch reaches k installs it.
	pending map[K]V
}

// New constructs an LRU-K cache. primaryCapacity bounds the promoted cache;
// historyCapacity bounds the shadow list tracking touch counts for
// not-yet-promoted keys; k is the number of touches required for promotion.
func New[K comparable, V any](primaryCapacity, historyCapacity, k int) *Engine[K, V] {
	if k < 1 {
		k = 1
	}
	return &Engine[K, V]{
		k:       k,
		primary: lru.New[K, V](primaryCapacity),
		history: lru.New[K, uint64](historyCapacity),
		pending: make(map[K]V),
	}
}

var _ cache.Cache[int, int] = (*Engine[int, int])(nil)

// Put stores or overwrites key→value if key is already promoted; otherwise
// it registers a touch and, once the touch count reaches k, promotes key
// with value into the primary cache.
func (e *Engine[K, V]) Put(key K, value V) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.primary.Get(key); ok {
		e.primary.Put(key, value)
		return
	}

	e.pending[key] = value
	e.touchLocked(key)
}

// Get returns the value for key if it is already promoted. A miss still
// registers a touch against the history counter but never promotes key:
// only a Put installs into the primary cache, so a key whose count has
// reached k through Gets is admitted by its next Put.
func (e *Engine[K, V]) Get(key K) (V, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if v, ok := e.primary.Get(key); ok {
		return v, true
	}
	count, _ := e.history.Get(key)
	e.history.Put(key, count+1)
	var zero V
	return zero, false
}

// GetOrZero returns the value for key, or the zero value of V if absent.
func (e *Engine[K, V]) GetOrZero(key K) V {
	v, _ := e.Get(key)
	return v
}

// touchLocked is Put's touch: it bumps key's shared touch counter in the
// history list and, on reaching k, promotes key into primary with its
// pending value. It reports the promoted value and true if this touch just
// promoted key.
func (e *Engine[K, V]) touchLocked(key K) (V, bool) {
	count, _ := e.history.Get(key)
	count++
	if count >= uint64(e.k) {
		v := e.pending[key]
		delete(e.pending, key)
		e.history.Remove(key)
		e.primary.Put(key, v)
		return v, true
	}
	e.history.Put(key, count)
	var zero V
	return zero, false
}

// Remove deletes key from whichever of primary/history/pending holds it,
// reporting whether it was present in the primary cache.
func (e *Engine[K, V]) Remove(key K) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	removed := e.primary.Remove(key)
	e.history.Remove(key)
	delete(e.pending, key)
	return removed
}

// Len reports the number of promoted (primary) entries. Keys still
// accumulating history touches are not counted.
func (e *Engine[K, V]) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.primary.Len()
}

// Purge empties both the primary cache and the history list.
func (e *Engine[K, V]) Purge() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.primary.Purge()
	e.history.Purge()
	e.pending = make(map[K]V)
}
