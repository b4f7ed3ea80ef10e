package slotmap

import (
	"github.com/jgrimm/slotmap/lib/slotmap/util"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// IMap is the generic contract of a striped concurrent map. All keyed
// operations are linearizable per key. Aggregate operations (Size, Clear,
// ForEach, ForEachUntil, Find, RemoveIf, UpdateIf, Reserve) are best effort:
// each shard visit is atomic, the whole-map result is not a snapshot.
//
// Absence is always reported as a (zero, false) return, never an error.
// Caller-supplied callbacks run while a shard lock is held: they must be
// short, must not re-enter the map, and read-locked callbacks (Inspect,
// ForEach, ForEachUntil, Find) must not mutate anything through references
// they are given.
type IMap[K comparable, V any] interface {

	// --------------------------------------------------------------------------
	// Keyed Read Operations
	// --------------------------------------------------------------------------

	// Get returns a copy of the value stored for key.
	Get(key K) (value V, loaded bool)
	// GetOrDefault returns a copy of the value stored for key, or def if the
	// key is absent. The default is only forwarded, never stored.
	GetOrDefault(key K, def V) (value V)
	// Contains reports whether key is present.
	Contains(key K) (loaded bool)
	// Inspect invokes fn with a reference to the stored value under the read
	// lock and reports whether the key was present. fn must not write through
	// the reference.
	Inspect(key K, fn func(v *V)) (loaded bool)

	// --------------------------------------------------------------------------
	// Keyed Write Operations
	// --------------------------------------------------------------------------

	// Add inserts or replaces the value for key (upsert) and returns the
	// prior value if one was present.
	Add(key K, value V) (prior V, replaced bool)
	// TryAdd inserts value only if key is absent; it never overwrites.
	TryAdd(key K, value V) (added bool)
	// Update invokes fn with a mutable reference to the stored value under
	// the write lock and reports whether the key was present.
	Update(key K, fn func(v *V)) (loaded bool)
	// ComputeIfAbsent inserts create() if key is absent, then invokes access
	// (if non-nil) with a reference to the stored value, as one atomic step.
	// create is called at most once and only on a miss.
	ComputeIfAbsent(key K, create func() V, access func(v *V))
	// Merge combines value with an existing entry. On a miss, value is
	// inserted and remap is not called. On a hit, remap(existing, incoming)
	// replaces the entry when it returns (v, true) and erases the entry when
	// it returns (_, false).
	Merge(key K, value V, remap func(existing, incoming V) (V, bool))
	// Remove deletes the entry for key and returns a copy of the prior value.
	Remove(key K) (prior V, loaded bool)

	// --------------------------------------------------------------------------
	// Aggregate Operations (best effort across shards)
	// --------------------------------------------------------------------------

	// ForEach invokes fn for every entry, shard by shard in index order.
	ForEach(fn func(key K, v V))
	// ForEachUntil is like ForEach but stops as soon as fn returns true.
	// It reports whether the scan ran to completion.
	ForEachUntil(fn func(key K, v V) bool) (completed bool)
	// Find returns a copy of the first value for which pred holds.
	Find(pred func(key K, v V) bool) (value V, found bool)
	// RemoveIf deletes every entry for which pred holds and returns the
	// number of entries removed.
	RemoveIf(pred func(key K, v V) bool) (removed int)
	// UpdateIf visits every entry under the shard write locks; pred may
	// mutate values in place and reports whether the entry counts as updated.
	// Returns the total count of updated entries.
	UpdateIf(pred func(key K, v *V) bool) (updated int)
	// Size returns the summed entry count of all shards.
	Size() (size int)
	// Clear empties every shard.
	Clear()
	// Reserve pre-sizes the shard tables for at least hint entries in total.
	Reserve(hint int)

	// --------------------------------------------------------------------------
	// Introspection
	// --------------------------------------------------------------------------

	// GetInfo returns statistics about the map.
	GetInfo() (info MapInfo)
}

// --------------------------------------------------------------------------
// Map Info
// --------------------------------------------------------------------------

// MapInfo describes a map's shape and shard balance. All values are best
// effort under concurrent mutation.
type MapInfo struct {
	ShardCount        int                    `json:"shard_count"`
	Entries           int                    `json:"entries"`
	Pooled            bool                   `json:"pooled"`
	ShardDistribution util.DistributionStats `json:"shard_distribution"`
}
