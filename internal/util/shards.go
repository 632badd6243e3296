package util

import "runtime"

// ReasonableShardCount picks a practical default shard count for
// sharded.Engine when a caller passes 0. Heuristic: nextPow2(2*GOMAXPROCS),
// clamped to [1..256]. This sharply reduces lock contention on the
// sharded wrapper's per-shard engines (each shard is itself a whole
// lru/lfu/lruk/arc instance with its own mutex), giving at least two shards
// per GOMAXPROCS, while the 256 cap bounds how finely the total capacity
// budget is split.
func ReasonableShardCount() int {
	p := runtime.GOMAXPROCS(0)
	if p < 1 {
		p = 1
	}
	n := int(nextPow2(uint64(p * 2)))
	if n < 1 {
		n = 1
	}
	if n > 256 {
		n = 256
	}
	return n
}

// ShardIndex maps a 64-bit key hash to a shard index in [0, shards). Takes
// the fast bitmask path when shards is a power of two (the common case,
// since ReasonableShardCount only ever returns one), and falls back to
// modulo for a caller-supplied shard count that isn't.
func ShardIndex(hash uint64, shards int) int {
	if shards <= 1 {
		return 0
	}
	if isPowerOfTwo(uint64(shards)) {
		return int(hash & uint64(shards-1))
	}
	return int(hash % uint64(shards))
}

// isPowerOfTwo reports whether x is a power of two (> 0).
func isPowerOfTwo(x uint64) bool {
	return x != 0 && (x&(x-1)) == 0
}

// nextPow2 returns the smallest power of two >= x, via the classic
// bit-twiddling "fill" technique. x == 0 returns 1. Only ever called with
// 2*GOMAXPROCS, so the practical range is tiny, but the fill handles the
// full uint64 domain (clamping to 1<<63 on overflow) rather than assuming it.
func nextPow2(x uint64) uint64 {
	if x <= 1 {
		return 1
	}
	x--
	x |= x >> 1
	x |= x >> 2
	x |= x >> 4
	x |= x >> 8
	x |= x >> 16
	x |= x >> 32
	x++
	if x == 0 {
		return 1 << 63
	}
	return x
}
