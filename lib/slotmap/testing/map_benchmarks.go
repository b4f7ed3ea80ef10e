package testing

import (
	"fmt"
	"testing"

	"github.com/jgrimm/slotmap/lib/slotmap"
)

// RunMapBenchmarks runs all benchmarks for an IMap implementation.
func RunMapBenchmarks(b *testing.B, name string, factory MapFactory) {

	b.Run("Add", func(b *testing.B) {
		benchmarkAdd(b, factory())
	})

	b.Run("AddExisting", func(b *testing.B) {
		benchmarkAddExisting(b, factory())
	})

	b.Run("Get", func(b *testing.B) {
		benchmarkGet(b, factory())
	})

	b.Run("Get(miss)", func(b *testing.B) {
		benchmarkGetMiss(b, factory())
	})

	b.Run("Contains", func(b *testing.B) {
		benchmarkContains(b, factory())
	})

	b.Run("Remove", func(b *testing.B) {
		benchmarkRemove(b, factory())
	})

	b.Run("ComputeIfAbsent", func(b *testing.B) {
		benchmarkComputeIfAbsent(b, factory())
	})

	b.Run("MixedUsage", func(b *testing.B) {
		benchmarkMixedUsage(b, factory())
	})
}

// --------------------------------------------------------------------------
// Benchmark functions
// --------------------------------------------------------------------------

const benchKeySpace = 65536

func benchKey(i int) string {
	return fmt.Sprintf("test-key-%d", i&(benchKeySpace-1))
}

func fillMap(b *testing.B, m slotmap.IMap[string, string]) {
	b.Helper()
	for i := 0; i < benchKeySpace; i++ {
		m.Add(benchKey(i), "test-value")
	}
}

func benchmarkAdd(b *testing.B, m slotmap.IMap[string, string]) {
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		counter := 0
		for pb.Next() {
			m.Add(benchKey(counter), "test-value")
			counter++
		}
	})
}

func benchmarkAddExisting(b *testing.B, m slotmap.IMap[string, string]) {
	fillMap(b, m)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		counter := 0
		for pb.Next() {
			m.Add(benchKey(counter), "new-value")
			counter++
		}
	})
}

func benchmarkGet(b *testing.B, m slotmap.IMap[string, string]) {
	fillMap(b, m)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		counter := 0
		for pb.Next() {
			m.Get(benchKey(counter))
			counter++
		}
	})
}

func benchmarkGetMiss(b *testing.B, m slotmap.IMap[string, string]) {
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		counter := 0
		for pb.Next() {
			m.Get(fmt.Sprintf("missing-key-%d", counter))
			counter++
		}
	})
}

func benchmarkContains(b *testing.B, m slotmap.IMap[string, string]) {
	fillMap(b, m)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		counter := 0
		for pb.Next() {
			m.Contains(benchKey(counter))
			counter++
		}
	})
}

func benchmarkRemove(b *testing.B, m slotmap.IMap[string, string]) {
	fillMap(b, m)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		counter := 0
		for pb.Next() {
			// alternate remove and re-add so the map never drains
			m.Remove(benchKey(counter))
			m.Add(benchKey(counter), "test-value")
			counter++
		}
	})
}

func benchmarkComputeIfAbsent(b *testing.B, m slotmap.IMap[string, string]) {
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		counter := 0
		for pb.Next() {
			m.ComputeIfAbsent(benchKey(counter), func() string { return "test-value" }, nil)
			counter++
		}
	})
}

func benchmarkMixedUsage(b *testing.B, m slotmap.IMap[string, string]) {
	fillMap(b, m)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		counter := 0
		for pb.Next() {
			key := benchKey(counter)
			switch counter % 10 {
			case 0:
				m.Add(key, "new-value")
			case 1:
				m.Remove(key)
			case 2:
				m.Update(key, func(v *string) { *v = "updated" })
			default:
				// read-heavy mix: 70% lookups
				m.Get(key)
			}
			counter++
		}
	})
}
