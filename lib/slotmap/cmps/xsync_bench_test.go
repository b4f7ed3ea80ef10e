package cmps

import (
	"sync/atomic"
	"testing"

	"github.com/puzpuzpuz/xsync/v3"
)

func xsyncHashUint(v uint, _ uint64) uint64 {
	return uint64(v)
}

func fillXSyncMap(b *testing.B, keyRange uint) *xsync.MapOf[uint, uint] {
	b.Helper()
	m := xsync.NewMapOfWithHasher[uint, uint](xsyncHashUint)
	for i := uint(0); i < keyRange; i++ {
		m.Store(i, i)
	}
	return m
}

func BenchmarkXSyncMap_Load_Balanced(b *testing.B) {
	m := fillXSyncMap(b, benchHits)
	var count atomic.Uintptr
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, sideEff = m.Load(uint(count.Add(1)-1) % (benchHits + benchMisses))
		}
	})
}

func BenchmarkXSyncMap_Store(b *testing.B) {
	m := xsync.NewMapOfWithHasher[uint, uint](xsyncHashUint)
	var count atomic.Uintptr
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			a := uint(count.Add(1) - 1)
			m.Store(a%(benchHits+benchMisses), a)
		}
	})
}

func BenchmarkXSyncMap_LoadOrStore_Balanced(b *testing.B) {
	m := fillXSyncMap(b, benchHits)
	var count atomic.Uintptr
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			a := uint(count.Add(1) - 1)
			m.LoadOrStore(a%(benchHits+benchMisses), a)
		}
	})
}

func BenchmarkXSyncMap_LoadAndDelete_Balanced(b *testing.B) {
	m := fillXSyncMap(b, benchHits)
	var count atomic.Uintptr
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			m.LoadAndDelete(uint(count.Add(1)-1) % (benchHits + benchMisses))
		}
	})
}
