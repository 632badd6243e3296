package arc

import "github.com/kvcache/cachekit/internal/entry"

// recencyPart is ARC's LRU-like half: a main list ordered MRU-first and a
// ghost list recording recently evicted keys. It has no lock of its own —
// arc.Engine holds the two locks covering both parts and always acquires
// them in the documented recency-then-frequency order.
//
// Grounded on original_source/ArcLruPart.h, minus its own std::mutex (moved
// up to Engine) and rebuilt over internal/entry.List.
type recencyPart[K comparable, V any] struct {
	capacity           int
	ghostCapacity      int
	transformThreshold int

	main     map[K]*entry.Node[K, V]
	mainList *entry.List[K, V]

	ghost     map[K]*entry.Node[K, struct{}]
	ghostList *entry.List[K, struct{}]
}

func newRecencyPart[K comparable, V any](capacity, ghostCapacity, transformThreshold int) *recencyPart[K, V] {
	return &recencyPart[K, V]{
		capacity:           capacity,
		ghostCapacity:      ghostCapacity,
		transformThreshold: transformThreshold,
		main:               make(map[K]*entry.Node[K, V]),
		mainList:           entry.New[K, V](),
		ghost:              make(map[K]*entry.Node[K, struct{}]),
		ghostList:          entry.New[K, struct{}](),
	}
}

// contains reports whether key is resident in the main list, without
// mutating any ordering or counters. Used by Engine purely for routing.
func (p *recencyPart[K, V]) contains(key K) bool {
	_, ok := p.main[key]
	return ok
}

// put inserts key→value (fresh entry, access count 1) or, if key is already
// resident, overwrites its value and bumps its access count by one. It
// reports whether this access just reached the promotion threshold.
func (p *recencyPart[K, V]) put(key K, value V) bool {
	if n, ok := p.main[key]; ok {
		n.Value = value
		p.mainList.MoveToFront(n)
		n.AccessCount++
		return n.AccessCount >= uint64(p.transformThreshold)
	}

	if len(p.main) >= p.capacity {
		p.evictLeastRecent()
	}
	n := &entry.Node[K, V]{Key: key, Value: value, AccessCount: 1}
	p.main[key] = n
	p.mainList.PushFront(n)
	return n.AccessCount >= uint64(p.transformThreshold)
}

// get reads key, promoting it to front and bumping its access count on hit.
// It reports the value, whether this access crossed the promotion
// threshold, and whether key was present at all.
func (p *recencyPart[K, V]) get(key K) (V, bool, bool) {
	n, ok := p.main[key]
	if !ok {
		var zero V
		return zero, false, false
	}
	p.mainList.MoveToFront(n)
	n.AccessCount++
	return n.Value, n.AccessCount >= uint64(p.transformThreshold), true
}

// checkGhost reports whether key is a ghost entry, removing it if so —
// ghost membership is checked at most once per access.
func (p *recencyPart[K, V]) checkGhost(key K) bool {
	n, ok := p.ghost[key]
	if !ok {
		return false
	}
	n.Remove()
	delete(p.ghost, key)
	return true
}

func (p *recencyPart[K, V]) increaseCapacity() { p.capacity++ }

// decreaseCapacity shrinks capacity by one, evicting first if main is
// already at the old capacity. Reports false (and leaves capacity
// unchanged) if capacity is already zero, mirroring the reference's refusal
// to go negative.
func (p *recencyPart[K, V]) decreaseCapacity() bool {
	if p.capacity <= 0 {
		return false
	}
	if len(p.main) == p.capacity {
		p.evictLeastRecent()
	}
	p.capacity--
	return true
}

// evictLeastRecent drops the tail of the main list into the ghost list. The
// ghost entry keeps no access count, so a key readmitted after a ghost hit
// starts again at access count 1 in put, per §4.4's eviction rule.
func (p *recencyPart[K, V]) evictLeastRecent() {
	victim := p.mainList.Back()
	if victim == nil {
		return
	}
	victim.Remove()
	delete(p.main, victim.Key)

	if p.ghostCapacity <= 0 {
		return
	}
	if p.ghostList.Len() >= p.ghostCapacity {
		if old := p.ghostList.RemoveBack(); old != nil {
			delete(p.ghost, old.Key)
		}
	}
	gn := &entry.Node[K, struct{}]{Key: victim.Key}
	p.ghostList.PushFront(gn)
	p.ghost[victim.Key] = gn
}
