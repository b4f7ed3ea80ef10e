// Package testing provides a reusable test and benchmark suite for
// implementations of the slotmap.IMap interface.
//
// The package contains:
//   - map_testing: RunMapTests, a comprehensive functional suite covering
//     every operation of the interface contract, including concurrent access
//   - map_benchmarks: RunMapBenchmarks, parallel benchmarks for the common
//     operation mix
//
// Both entry points are factory-driven so one suite can validate any number
// of map configurations (shard counts, pooling, custom hashers) or even
// alternative implementations of the interface.
package testing
