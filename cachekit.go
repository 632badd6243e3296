// Package cachekit is a thin facade over this module's cache engines,
// giving callers a single import path instead of one per policy — the
// same shape the teacher's top-level cache package uses to front its
// policy/lru package.
package cachekit

import (
	"github.com/kvcache/cachekit/arc"
	"github.com/kvcache/cachekit/cache"
	"github.com/kvcache/cachekit/lfu"
	"github.com/kvcache/cachekit/lru"
	"github.com/kvcache/cachekit/lruk"
	"github.com/kvcache/cachekit/sharded"
)

// Cache is the capability set every engine below implements.
type Cache[K comparable, V any] = cache.Cache[K, V]

// NewLRU constructs a classic move-to-front LRU cache.
func NewLRU[K comparable, V any](capacity int) Cache[K, V] {
	return lru.New[K, V](capacity)
}

// NewLFU constructs an LFU cache with a dynamic average-frequency aging
// rule. maxAverage defaults to 10 when omitted.
func NewLFU[K comparable, V any](capacity int, maxAverage ...int) Cache[K, V] {
	return lfu.New[K, V](capacity, maxAverage...)
}

// NewLRUK constructs an LRU-K admission filter: a key must be touched k
// times (by Get or Put) before it is promoted into the primary cache.
func NewLRUK[K comparable, V any](primaryCapacity, historyCapacity, k int) Cache[K, V] {
	return lruk.New[K, V](primaryCapacity, historyCapacity, k)
}

// NewARC constructs an Adaptive Replacement Cache. transformThreshold
// defaults to 2 when omitted.
func NewARC[K comparable, V any](capacity int, transformThreshold ...int) Cache[K, V] {
	return arc.New[K, V](capacity, transformThreshold...)
}

// NewShardedLRU constructs a sharded cache of LRU engines. shardCount of 0
// picks a default based on hardware parallelism.
func NewShardedLRU[K comparable, V any](totalCapacity, shardCount int) Cache[K, V] {
	return sharded.NewShardedLRU[K, V](totalCapacity, shardCount)
}

// NewShardedLFU constructs a sharded cache of LFU engines. maxAverage
// defaults to 10 when omitted.
func NewShardedLFU[K comparable, V any](totalCapacity, shardCount int, maxAverage ...int) Cache[K, V] {
	return sharded.NewShardedLFU[K, V](totalCapacity, shardCount, maxAverage...)
}
