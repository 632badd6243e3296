// Package lfu implements a Least-Frequently-Used cache with a dynamic
// "average-frequency" aging rule that prevents long-lived hot keys from
// accumulating unbounded frequency and starving newer arrivals.
//
// Grounded on original_source/LfuBase.h (the frequency-bucket index,
// min-frequency tracking, and the aging pass triggered when the running
// average exceeds a ceiling) reimplemented over internal/entry.List instead
// of the source's hand-rolled FreqList, and following the teacher's style
// of a single mutex guarding map + ordering structure + counters.
package lfu

import (
	"sync"

	"github.com/kvcache/cachekit/cache"
	"github.com/kvcache/cachekit/internal/entry"
)

// defaultMaxAverage matches the reference constructor's maxAverageNum
// default and the spec's §6 "max_average = 10".
const defaultMaxAverage = 10

// Engine is a bounded, thread-safe LFU cache.
type Engine[K comparable, V any] struct {
	mu sync.Mutex

	capacity   int
	maxAverage int

	minFreq    uint64
	curTotal   uint64 // sum of every live node's freq
	curAverage uint64 // curTotal / size, integer division

	m     map[K]*entry.Node[K, V]
	freqs map[uint64]*entry.List[K, V] // freq -> FIFO bucket of nodes at that freq
}

// New constructs an LFU cache holding at most capacity entries. maxAverage
// is the aging ceiling (§4.2); it defaults to 10 when omitted, matching the
// reference constructor's default and §6 of the spec. Only the first
// variadic value is used — additional values are ignored, mirroring how a
// caller would pass a single optional parameter in a language with true
// default arguments.
func New[K comparable, V any](capacity int, maxAverage ...int) *Engine[K, V] {
	ma := defaultMaxAverage
	if len(maxAverage) > 0 {
		ma = maxAverage[0]
	}
	if ma <= 0 {
		ma = defaultMaxAverage
	}
	return &Engine[K, V]{
		capacity:   capacity,
		maxAverage: ma,
		m:          make(map[K]*entry.Node[K, V]),
		freqs:      make(map[uint64]*entry.List[K, V]),
	}
}

var _ cache.Cache[int, int] = (*Engine[int, int])(nil)

// Put stores or overwrites key→value. An overwrite of an existing key
// counts as an access (its frequency is bumped exactly as Get would).
func (e *Engine[K, V]) Put(key K, value V) {
	if e.capacity <= 0 {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if n, ok := e.m[key]; ok {
		n.Value = value
		e.touchLocked(n)
		return
	}

	if len(e.m) >= e.capacity {
		e.evictLocked()
	}

	n := &entry.Node[K, V]{Key: key, Value: value, Freq: 1}
	e.m[key] = n
	e.bucketLocked(1).PushBack(n)
	e.minFreq = 1
	e.curTotal++
	e.recomputeAverageLocked()
}

// Get returns the value for key, bumping its frequency on hit.
func (e *Engine[K, V]) Get(key K) (V, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	n, ok := e.m[key]
	if !ok {
		var zero V
		return zero, false
	}
	e.touchLocked(n)
	return n.Value, true
}

// GetOrZero returns the value for key, or the zero value of V if absent.
func (e *Engine[K, V]) GetOrZero(key K) V {
	v, _ := e.Get(key)
	return v
}

// Remove deletes key if present and reports whether it was present.
// Removing the sole occupant of the minimum-frequency bucket can leave
// minFreq stale until the next eviction (which lazily recomputes it) or the
// next fresh insert (which resets it to 1); Get never consults it — see §9's
// third open-question resolution.
func (e *Engine[K, V]) Remove(key K) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	n, ok := e.m[key]
	if !ok {
		return false
	}
	e.detachLocked(n)
	delete(e.m, key)
	e.curTotal -= n.Freq
	e.recomputeAverageLocked()
	return true
}

// Len reports the number of resident entries.
func (e *Engine[K, V]) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.m)
}

// Purge empties the cache and resets every counter, per §4.2's purge().
func (e *Engine[K, V]) Purge() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.m = make(map[K]*entry.Node[K, V])
	e.freqs = make(map[uint64]*entry.List[K, V])
	e.minFreq, e.curTotal, e.curAverage = 0, 0, 0
}

// touchLocked is the shared get/overwrite path: move n from its current
// frequency bucket to the next one up, fix up minFreq if the old bucket
// was the minimum and emptied, then re-run the aging check.
func (e *Engine[K, V]) touchLocked(n *entry.Node[K, V]) {
	oldFreq := n.Freq
	oldBucket := e.freqs[oldFreq]
	n.Remove()
	if oldBucket != nil && oldBucket.Len() == 0 {
		delete(e.freqs, oldFreq)
	}
	newFreq := oldFreq + 1
	n.Freq = newFreq
	e.bucketLocked(newFreq).PushBack(n)

	if oldFreq == e.minFreq && (oldBucket == nil || oldBucket.Len() == 0) {
		e.minFreq = newFreq
	}

	e.curTotal++
	e.recomputeAverageLocked()
}

// bucketLocked returns (creating if necessary) the FIFO bucket for freq.
func (e *Engine[K, V]) bucketLocked(freq uint64) *entry.List[K, V] {
	b, ok := e.freqs[freq]
	if !ok {
		b = entry.New[K, V]()
		e.freqs[freq] = b
	}
	return b
}

// detachLocked unlinks n from its frequency bucket and deletes the bucket
// if it is now empty, without touching minFreq (callers decide that).
func (e *Engine[K, V]) detachLocked(n *entry.Node[K, V]) {
	b := e.freqs[n.Freq]
	n.Remove()
	if b != nil && b.Len() == 0 {
		delete(e.freqs, n.Freq)
	}
}

// evictLocked drops the oldest-admitted entry in the minimum-frequency
// bucket (FIFO within the bucket is the LRU tie-break the spec mandates).
// It lazily recomputes minFreq first if the bucket it names is already
// gone or empty — the one place the "known limitation" in §9 can surface,
// since a prior Remove may have emptied it without fixing minFreq up.
func (e *Engine[K, V]) evictLocked() {
	if len(e.m) == 0 {
		return
	}
	e.fixMinFreqLocked()

	bucket := e.freqs[e.minFreq]
	victim := bucket.RemoveFront()
	if victim == nil {
		panic("lfu: minFreq bucket empty with non-zero size — invariant violated")
	}
	if bucket.Len() == 0 {
		delete(e.freqs, e.minFreq)
	}
	delete(e.m, victim.Key)
	e.curTotal -= victim.Freq
	e.recomputeAverageLocked()
}

// fixMinFreqLocked scans the (small — bounded by the number of distinct
// live frequencies) bucket index for the true minimum when the cached
// minFreq no longer names a live bucket.
func (e *Engine[K, V]) fixMinFreqLocked() {
	if b, ok := e.freqs[e.minFreq]; ok && b.Len() > 0 {
		return
	}
	min := uint64(0)
	found := false
	for f, b := range e.freqs {
		if b.Len() == 0 {
			continue
		}
		if !found || f < min {
			min, found = f, true
		}
	}
	if !found {
		min = 1
	}
	e.minFreq = min
}

// recomputeAverageLocked updates curAverage and, if it now exceeds the
// configured ceiling, ages every live node down.
func (e *Engine[K, V]) recomputeAverageLocked() {
	if len(e.m) == 0 {
		e.curAverage = 0
		return
	}
	e.curAverage = e.curTotal / uint64(len(e.m))
	if e.curAverage > uint64(e.maxAverage) {
		e.ageLocked()
	}
}

// ageLocked implements §4.2's aging rule: every node loses maxAverage/2
// frequency (clamped to a minimum of 1), the frequency index is rebuilt
// from scratch, and minFreq is reset to the smallest surviving frequency.
// This is the one O(size) path in the engine; it runs only when the
// running average crosses the ceiling, not on every access.
func (e *Engine[K, V]) ageLocked() {
	decrement := uint64(e.maxAverage / 2)
	e.freqs = make(map[uint64]*entry.List[K, V])
	e.curTotal = 0
	min := uint64(0)
	first := true

	for _, n := range e.m {
		newFreq := uint64(1)
		if n.Freq > decrement {
			newFreq = n.Freq - decrement
		}
		n.Freq = newFreq
		e.bucketLocked(newFreq).PushBack(n)
		e.curTotal += newFreq
		if first || newFreq < min {
			min, first = newFreq, false
		}
	}
	if first {
		min = 1
	}
	e.minFreq = min
	if len(e.m) > 0 {
		e.curAverage = e.curTotal / uint64(len(e.m))
	} else {
		e.curAverage = 0
	}
}
