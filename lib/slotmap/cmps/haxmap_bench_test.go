package cmps

import (
	"sync/atomic"
	"testing"

	"github.com/alphadose/haxmap"
)

func fillHaxMap(b *testing.B, keyRange uint) *haxmap.Map[uint, uint] {
	b.Helper()
	m := haxmap.New[uint, uint]()
	for i := uint(0); i < keyRange; i++ {
		m.Set(i, i)
	}
	return m
}

func BenchmarkHaxMap_Get_Balanced(b *testing.B) {
	m := fillHaxMap(b, benchHits)
	var count atomic.Uintptr
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, sideEff = m.Get(uint(count.Add(1)-1) % (benchHits + benchMisses))
		}
	})
}

func BenchmarkHaxMap_Set(b *testing.B) {
	m := haxmap.New[uint, uint]()
	var count atomic.Uintptr
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			a := uint(count.Add(1) - 1)
			m.Set(a%(benchHits+benchMisses), a)
		}
	})
}

func BenchmarkHaxMap_GetOrSet_Balanced(b *testing.B) {
	m := fillHaxMap(b, benchHits)
	var count atomic.Uintptr
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			a := uint(count.Add(1) - 1)
			m.GetOrSet(a%(benchHits+benchMisses), a)
		}
	})
}
