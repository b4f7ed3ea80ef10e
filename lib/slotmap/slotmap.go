package slotmap

import (
	"fmt"

	"github.com/jgrimm/slotmap/lib/slotmap/internal"
	"github.com/jgrimm/slotmap/lib/slotmap/util"
)

// --------------------------------------------------------------------------
// Core Map structure
// --------------------------------------------------------------------------

// Map is a striped concurrent map implementing IMap. It routes every keyed
// operation to exactly one shard via finalize(hash(key)) & mask and fans
// aggregate operations out across all shards in index order.
//
// A Map must not be copied after first use (the shards embed locks).
type Map[K comparable, V any] struct {
	shards []*internal.Shard[K, V]
	mask   uint64
	seed   uint64
	hasher Hasher[K]
	pooled bool
}

// compile-time interface check
var _ IMap[string, int] = (*Map[string, int])(nil)

// --------------------------------------------------------------------------
// Initialization and Setup
// --------------------------------------------------------------------------

// New creates a Map with the specified options (nil = defaults) and the
// default maphash-based key hasher.
//
// Thread-safety: This function is not thread-safe and should only be called
// once per map during initialization.
func New[K comparable, V any](opts *Options) *Map[K, V] {
	return NewWithHasher[K, V](opts, defaultHasher[K]())
}

// NewWithHasher creates a Map with a caller-supplied raw hash function. The
// hasher receives the map's random seed so different instances spread the
// same keys differently. The hash output does not need to be well
// distributed; routing runs it through Finalize.
func NewWithHasher[K comparable, V any](opts *Options, hasher Hasher[K]) *Map[K, V] {
	// Generate default options if not provided
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.NumShards < 0 {
		panic(fmt.Sprintf("slotmap: invalid shard count %d", opts.NumShards))
	}

	numShards := opts.NumShards
	if numShards == 0 {
		numShards = DefaultOptions().NumShards
	}
	numShards = ceilPow2(numShards)

	// divide the size hint evenly (ceiling) across shards
	perShard := 0
	if opts.SizeHint > 0 {
		perShard = (opts.SizeHint + numShards - 1) / numShards
	}

	// Create shards
	shards := make([]*internal.Shard[K, V], numShards)
	for i := range shards {
		shards[i] = internal.NewShard[K, V](perShard, opts.Pooled)
	}

	return &Map[K, V]{
		shards: shards,
		mask:   uint64(numShards - 1),
		seed:   util.GenerateSeed(),
		hasher: hasher,
		pooled: opts.Pooled,
	}
}

// --------------------------------------------------------------------------
// Shard Routing
// --------------------------------------------------------------------------

// shardIndex maps a key to its shard index. Pure: the same key always routes
// to the same shard for the lifetime of the map.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (m *Map[K, V]) shardIndex(key K) uint64 {
	return Finalize(m.hasher(key, m.seed)) & m.mask
}

// shardFor returns the shard owning key.
func (m *Map[K, V]) shardFor(key K) *internal.Shard[K, V] {
	return m.shards[m.shardIndex(key)]
}

// NumShards returns the fixed shard count of this map.
func (m *Map[K, V]) NumShards() int {
	return len(m.shards)
}

// --------------------------------------------------------------------------
// Keyed Operations (docu see interface.go)
// --------------------------------------------------------------------------

// Thread-safety: all keyed operations are thread-safe; they acquire exactly
// one shard lock (shared for reads, exclusive for writes).

func (m *Map[K, V]) Get(key K) (V, bool) {
	return m.shardFor(key).Get(key)
}

func (m *Map[K, V]) GetOrDefault(key K, def V) V {
	return m.shardFor(key).GetOrDefault(key, def)
}

func (m *Map[K, V]) Contains(key K) bool {
	return m.shardFor(key).Contains(key)
}

func (m *Map[K, V]) Inspect(key K, fn func(v *V)) bool {
	return m.shardFor(key).Inspect(key, fn)
}

func (m *Map[K, V]) Add(key K, value V) (V, bool) {
	return m.shardFor(key).Add(key, value)
}

func (m *Map[K, V]) TryAdd(key K, value V) bool {
	return m.shardFor(key).TryAdd(key, value)
}

func (m *Map[K, V]) Update(key K, fn func(v *V)) bool {
	return m.shardFor(key).Update(key, fn)
}

func (m *Map[K, V]) ComputeIfAbsent(key K, create func() V, access func(v *V)) {
	m.shardFor(key).ComputeIfAbsent(key, create, access)
}

func (m *Map[K, V]) Merge(key K, value V, remap func(existing, incoming V) (V, bool)) {
	m.shardFor(key).Merge(key, value, remap)
}

func (m *Map[K, V]) Remove(key K) (V, bool) {
	return m.shardFor(key).Remove(key)
}

// --------------------------------------------------------------------------
// Aggregate Operations
// --------------------------------------------------------------------------

// Thread-safety: aggregate operations are thread-safe but not atomic across
// shards. They visit the shards sequentially in index order; a concurrent
// writer may mutate an already-visited shard mid-aggregate. See the package
// documentation for the best-effort semantics.

func (m *Map[K, V]) ForEach(fn func(key K, v V)) {
	for _, shard := range m.shards {
		shard.ForEach(fn)
	}
}

func (m *Map[K, V]) ForEachUntil(fn func(key K, v V) bool) bool {
	for _, shard := range m.shards {
		if !shard.ForEachUntil(fn) {
			return false
		}
	}
	return true
}

func (m *Map[K, V]) Find(pred func(key K, v V) bool) (V, bool) {
	for _, shard := range m.shards {
		if v, ok := shard.Find(pred); ok {
			return v, true
		}
	}
	var zero V
	return zero, false
}

func (m *Map[K, V]) RemoveIf(pred func(key K, v V) bool) int {
	removed := 0
	for _, shard := range m.shards {
		removed += shard.RemoveIf(pred)
	}
	return removed
}

func (m *Map[K, V]) UpdateIf(pred func(key K, v *V) bool) int {
	updated := 0
	for _, shard := range m.shards {
		updated += shard.UpdateIf(pred)
	}
	return updated
}

func (m *Map[K, V]) Size() int {
	size := 0
	for _, shard := range m.shards {
		size += shard.Size()
	}
	return size
}

func (m *Map[K, V]) Clear() {
	for _, shard := range m.shards {
		shard.Clear()
	}
}

func (m *Map[K, V]) Reserve(hint int) {
	if hint <= 0 {
		return
	}
	perShard := (hint + len(m.shards) - 1) / len(m.shards)
	for _, shard := range m.shards {
		shard.Reserve(perShard)
	}
}

// --------------------------------------------------------------------------
// Introspection
// --------------------------------------------------------------------------

// GetInfo returns statistics about the map: shard count, entry total and
// how evenly the entries are spread across the shards.
//
// Thread-safety: This method is thread-safe; the numbers are best effort
// under concurrent mutation.
func (m *Map[K, V]) GetInfo() MapInfo {
	shardSizes := make([]float64, len(m.shards))
	entries := 0
	for i, shard := range m.shards {
		size := shard.Size()
		shardSizes[i] = float64(size)
		entries += size
	}

	return MapInfo{
		ShardCount:        len(m.shards),
		Entries:           entries,
		Pooled:            m.pooled,
		ShardDistribution: util.NewDistributionStats(shardSizes),
	}
}
