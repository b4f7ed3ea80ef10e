// Package cmps holds comparison benchmarks pitting slotmap against other
// concurrent map implementations (sync.Map, a single-mutex map,
// xsync.MapOf, haxmap and cornelk/hashmap) under identical balanced
// hit/miss workloads.
//
// These benchmarks document where the striped reader/writer-lock design
// sits relative to the lock-free designs: it trades peak read throughput
// for the conditional-mutation API (in-place Update, Merge, UpdateIf) that
// lock-free maps cannot offer without copy loops.
package cmps
