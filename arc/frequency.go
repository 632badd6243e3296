package arc

import "github.com/kvcache/cachekit/internal/entry"

// frequencyPart is ARC's LFU-like half: a frequency-bucket main index (no
// aging rule — §4.4 names none for ARC's frequency part, unlike the
// standalone lfu engine) plus a ghost list. Like recencyPart, it carries no
// lock of its own.
//
// Grounded on original_source/ArcLfuPart.h, minus its own std::mutex and its
// std::map<size_t, list<NodePtr>> (a plain map plus a tracked minFreq serves
// the same purpose here, as in the lfu package), rebuilt over
// internal/entry.List.
type frequencyPart[K comparable, V any] struct {
	capacity      int
	ghostCapacity int

	minFreq uint64
	main    map[K]*entry.Node[K, V]
	freqs   map[uint64]*entry.List[K, V]

	ghost     map[K]*entry.Node[K, struct{}]
	ghostList *entry.List[K, struct{}]
}

func newFrequencyPart[K comparable, V any](capacity, ghostCapacity int) *frequencyPart[K, V] {
	return &frequencyPart[K, V]{
		capacity:      capacity,
		ghostCapacity: ghostCapacity,
		main:          make(map[K]*entry.Node[K, V]),
		freqs:         make(map[uint64]*entry.List[K, V]),
		ghost:         make(map[K]*entry.Node[K, struct{}]),
		ghostList:     entry.New[K, struct{}](),
	}
}

// contains reports whether key is resident in the main index, without
// mutating any ordering or counters.
func (p *frequencyPart[K, V]) contains(key K) bool {
	_, ok := p.main[key]
	return ok
}

// put inserts key→value at frequency 1 (fresh entry) or, if key is already
// resident, overwrites its value and bumps its frequency by one.
func (p *frequencyPart[K, V]) put(key K, value V) {
	if n, ok := p.main[key]; ok {
		n.Value = value
		p.bump(n)
		return
	}

	if len(p.main) >= p.capacity {
		p.evictLeastFrequent()
	}
	n := &entry.Node[K, V]{Key: key, Value: value, Freq: 1}
	p.main[key] = n
	p.bucket(1).PushBack(n)
	p.minFreq = 1
}

// get reads key, bumping its frequency on hit.
func (p *frequencyPart[K, V]) get(key K) (V, bool) {
	n, ok := p.main[key]
	if !ok {
		var zero V
		return zero, false
	}
	p.bump(n)
	return n.Value, true
}

// bump moves n from its current frequency bucket to the next one up,
// fixing minFreq if the old bucket was the minimum and just emptied.
func (p *frequencyPart[K, V]) bump(n *entry.Node[K, V]) {
	oldFreq := n.Freq
	oldBucket := p.freqs[oldFreq]
	n.Remove()
	if oldBucket != nil && oldBucket.Len() == 0 {
		delete(p.freqs, oldFreq)
	}
	newFreq := oldFreq + 1
	n.Freq = newFreq
	p.bucket(newFreq).PushBack(n)

	if oldFreq == p.minFreq && (oldBucket == nil || oldBucket.Len() == 0) {
		p.minFreq = newFreq
	}
}

func (p *frequencyPart[K, V]) bucket(freq uint64) *entry.List[K, V] {
	b, ok := p.freqs[freq]
	if !ok {
		b = entry.New[K, V]()
		p.freqs[freq] = b
	}
	return b
}

// checkGhost reports whether key is a ghost entry, removing it if so.
func (p *frequencyPart[K, V]) checkGhost(key K) bool {
	n, ok := p.ghost[key]
	if !ok {
		return false
	}
	n.Remove()
	delete(p.ghost, key)
	return true
}

func (p *frequencyPart[K, V]) increaseCapacity() { p.capacity++ }

func (p *frequencyPart[K, V]) decreaseCapacity() bool {
	if p.capacity <= 0 {
		return false
	}
	if len(p.main) == p.capacity {
		p.evictLeastFrequent()
	}
	p.capacity--
	return true
}

// evictLeastFrequent drops the oldest-admitted entry in the minimum
// frequency bucket into the ghost list.
func (p *frequencyPart[K, V]) evictLeastFrequent() {
	if len(p.main) == 0 {
		return
	}
	p.fixMinFreq()

	bucket := p.freqs[p.minFreq]
	victim := bucket.RemoveFront()
	if victim == nil {
		return
	}
	if bucket.Len() == 0 {
		delete(p.freqs, p.minFreq)
		p.fixMinFreq()
	}
	delete(p.main, victim.Key)

	if p.ghostCapacity <= 0 {
		return
	}
	if p.ghostList.Len() >= p.ghostCapacity {
		if old := p.ghostList.RemoveFront(); old != nil {
			delete(p.ghost, old.Key)
		}
	}
	gn := &entry.Node[K, struct{}]{Key: victim.Key}
	p.ghostList.PushBack(gn)
	p.ghost[victim.Key] = gn
}

// fixMinFreq scans the (small) bucket index for the true minimum when the
// cached minFreq no longer names a live bucket.
func (p *frequencyPart[K, V]) fixMinFreq() {
	if b, ok := p.freqs[p.minFreq]; ok && b.Len() > 0 {
		return
	}
	min := uint64(0)
	found := false
	for f, b := range p.freqs {
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
	p.minFreq = min
}
