// Package sharded wraps any cache.Cache engine into N independently-locked
// shards, routing each key by a hash modulo the shard count to shrink lock
// contention under concurrent access.
//
// Grounded on the teacher's cache.New/newShard pair (shard.go), generalized
// from "exactly one policy type per cache instance" to an arbitrary engine
// factory closure, and on internal/util's hashing/shard-count helpers
// (themselves adapted from the teacher's internal/util, with its FNV-1a
// hash swapped for xxhash — see DESIGN.md).
package sharded

import (
	"github.com/kvcache/cachekit/cache"
	"github.com/kvcache/cachekit/internal/util"
	"github.com/kvcache/cachekit/lfu"
	"github.com/kvcache/cachekit/lru"
)

// Engine is a bounded, thread-safe cache made of N independently-locked
// shards, each a complete cache.Cache[K, V] of whatever kind newEngine
// produces.
type Engine[K comparable, V any] struct {
	shards []cache.Cache[K, V]
}

// New builds a sharded cache with shardCount shards (0 picks a default
// based on hardware parallelism), each constructed by calling newEngine
// with its per-shard capacity — ceil(totalCapacity / shardCount).
func New[K comparable, V any](totalCapacity, shardCount int, newEngine func(perShardCapacity int) cache.Cache[K, V]) *Engine[K, V] {
	if shardCount <= 0 {
		shardCount = util.ReasonableShardCount()
	}
	perShard := ceilDiv(totalCapacity, shardCount)

	shards := make([]cache.Cache[K, V], shardCount)
	for i := range shards {
		shards[i] = newEngine(perShard)
	}
	return &Engine[K, V]{shards: shards}
}

// NewShardedLRU builds a sharded cache of LRU engines, per §6's
// ShardedLRU(total_capacity, shard_count) constructor.
func NewShardedLRU[K comparable, V any](totalCapacity, shardCount int) *Engine[K, V] {
	return New[K, V](totalCapacity, shardCount, func(perShardCapacity int) cache.Cache[K, V] {
		return lru.New[K, V](perShardCapacity)
	})
}

// NewShardedLFU builds a sharded cache of LFU engines, per §6's
// ShardedLFU(total_capacity, shard_count, max_average = 10) constructor.
func NewShardedLFU[K comparable, V any](totalCapacity, shardCount int, maxAverage ...int) *Engine[K, V] {
	return New[K, V](totalCapacity, shardCount, func(perShardCapacity int) cache.Cache[K, V] {
		return lfu.New[K, V](perShardCapacity, maxAverage...)
	})
}

var _ cache.Cache[int, int] = (*Engine[int, int])(nil)

func (e *Engine[K, V]) Put(key K, value V) {
	e.shardFor(key).Put(key, value)
}

func (e *Engine[K, V]) Get(key K) (V, bool) {
	return e.shardFor(key).Get(key)
}

func (e *Engine[K, V]) GetOrZero(key K) V {
	return e.shardFor(key).GetOrZero(key)
}

func (e *Engine[K, V]) Remove(key K) bool {
	return e.shardFor(key).Remove(key)
}

// Len sums the resident count across every shard.
func (e *Engine[K, V]) Len() int {
	total := 0
	for _, s := range e.shards {
		total += s.Len()
	}
	return total
}

// Purge empties every shard.
func (e *Engine[K, V]) Purge() {
	for _, s := range e.shards {
		s.Purge()
	}
}

func (e *Engine[K, V]) shardFor(key K) cache.Cache[K, V] {
	h := util.Hash64(key)
	return e.shards[util.ShardIndex(h, len(e.shards))]
}

func ceilDiv(total, n int) int {
	if n <= 0 {
		return total
	}
	return (total + n - 1) / n
}
