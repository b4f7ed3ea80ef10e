package slotmap

import (
	"runtime"
)

// --------------------------------------------------------------------------
// Options
// --------------------------------------------------------------------------

// Options configures a Map during construction.
type Options struct {
	// NumShards is the number of shards. Zero means auto (one per CPU).
	// The value is rounded up to a power of two. Negative values panic.
	NumShards int

	// SizeHint is the expected total entry count. It is divided across the
	// shards to pre-size their tables. Zero means no pre-sizing.
	SizeHint int

	// Pooled enables the per-shard node free list that recycles entry
	// storage. Purely a performance knob; observable behavior is identical
	// either way.
	Pooled bool
}

// DefaultOptions returns the default Map options.
func DefaultOptions() *Options {
	return &Options{
		NumShards: runtime.NumCPU(), // auto-determine based on CPU count
		Pooled:    true,
	}
}
