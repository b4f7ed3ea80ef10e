// Package util provides supporting components for the slotmap package.
//
// The package contains:
//   - functions: seed generation for hash randomization
//   - statistics: distribution statistics used to judge how evenly entries
//     are spread across the shards of a map
//
// This package is particularly useful for:
//   - Map implementations that need a per-instance hash seed
//   - Monitoring code that wants to report shard balance without scanning
//     every entry
package util
