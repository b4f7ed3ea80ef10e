// Package internal contains the shard implementation backing the slotmap
// package.
//
// A Shard is one independently locked partition of a striped map: a
// conventional hash table guarded by a reader/writer lock, plus an optional
// private node pool that recycles entry storage for high-churn workloads.
// Every operation on a Shard is atomic with respect to that shard's lock;
// composing shards into a map (routing, aggregates) is the job of the
// slotmap package.
package internal
