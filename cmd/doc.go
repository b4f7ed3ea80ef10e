// Package cmd implements the slotmap command line interface.
//
// The CLI is a development tool, not part of the library contract. It
// currently offers:
//   - perf: an in-process benchmark/stress tool that builds a map with the
//     requested shape (shards, pooling, value size) and measures the common
//     operation mix, with optional CSV export and latency percentiles
//   - version: prints the release version
package cmd
