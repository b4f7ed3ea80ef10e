// Package slotmap implements a striped, thread-safe associative map: a fixed
// number of independently locked shards ("slots"), each a conventional hash
// table guarded by a reader/writer lock, composed to behave like one
// concurrent map with value semantics.
//
// The package focuses on:
//   - Bounded lock contention through sharding: operations on different
//     shards never block each other, and readers of one shard run in parallel
//   - Strict per-key consistency: all operations on one key are serialized by
//     a single shard lock, so per-key histories are linearizable
//   - Value semantics: reads copy the stored value out to the caller; for
//     expensive-to-copy values, Inspect and Update grant lock-scoped access
//     through a reference instead
//   - A rich conditional-mutation API (ComputeIfAbsent, Merge, TryAdd,
//     Update, UpdateIf, RemoveIf) executed as one logically atomic step under
//     one lock acquisition
//
// Key Components:
//
//   - Map: The striped map. It owns a fixed array of shards created at
//     construction and routes every keyed operation to exactly one shard via
//     a pure function of the key. The Map has no mutable state of its own;
//     all entry ownership is delegated to the shards. A Map must not be
//     copied after first use.
//
//   - Shard (internal): One partition of the key space with its own table,
//     reader/writer lock and, optionally, a private node pool that recycles
//     entry storage to cut allocation churn under high update/remove rates.
//     The pool is never shared across shards and is only touched under the
//     owning shard's write lock.
//
//   - Hash finalizer: Raw key hashes are not trusted to be well distributed
//     (monotonic integer keys are the classic offender), so the routing
//     function pushes them through a splitmix64-style avalanche mixer before
//     selecting a shard.
//
// Aggregate Semantics:
//
// Whole-map operations (Size, Clear, ForEach, ForEachUntil, Find, RemoveIf,
// UpdateIf, Reserve) visit the shards sequentially in index order. Each
// per-shard step is atomic under that shard's lock, but there is no global
// lock: the aggregate as a whole is best effort and does not correspond to
// one consistent instant in time under concurrent mutation. This is a
// deliberate trade-off; a global lock would reintroduce the bottleneck the
// striping exists to avoid.
//
// Error Handling:
//
// Absence is reported as a (zero, false) return, never as an error. Panics
// raised by caller-supplied callbacks propagate to the caller with the
// shard's lock released.
package slotmap
