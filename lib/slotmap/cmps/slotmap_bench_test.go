package cmps

import (
	"sync/atomic"
	"testing"

	"github.com/jgrimm/slotmap/lib/slotmap"
)

// shared benchmark sink, keeps loads from being optimized away
var sideEff bool

const (
	benchHits   = 1024
	benchMisses = 1024
)

func slotmapHashUint(v uint, _ uint64) uint64 {
	return uint64(v)
}

func fillSlotMap(b *testing.B, keyRange uint) *slotmap.Map[uint, uint] {
	b.Helper()
	m := slotmap.NewWithHasher[uint, uint](&slotmap.Options{NumShards: 64}, slotmapHashUint)
	for i := uint(0); i < keyRange; i++ {
		m.Add(i, i)
	}
	return m
}

func BenchmarkSlotMap_Get_Balanced(b *testing.B) {
	m := fillSlotMap(b, benchHits)
	var count atomic.Uintptr
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, sideEff = m.Get(uint(count.Add(1)-1) % (benchHits + benchMisses))
		}
	})
}

func BenchmarkSlotMap_Add(b *testing.B) {
	m := slotmap.NewWithHasher[uint, uint](&slotmap.Options{NumShards: 64}, slotmapHashUint)
	var count atomic.Uintptr
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			a := uint(count.Add(1) - 1)
			m.Add(a%(benchHits+benchMisses), a)
		}
	})
}

func BenchmarkSlotMap_ComputeIfAbsent_Balanced(b *testing.B) {
	m := fillSlotMap(b, benchHits)
	var count atomic.Uintptr
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			a := uint(count.Add(1) - 1)
			c := a % (benchHits + benchMisses)
			m.ComputeIfAbsent(c, func() uint { return a }, nil)
		}
	})
}

func BenchmarkSlotMap_GetAndRemove_Balanced(b *testing.B) {
	m := fillSlotMap(b, benchHits)
	var count atomic.Uintptr
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			m.Remove(uint(count.Add(1)-1) % (benchHits + benchMisses))
		}
	})
}
