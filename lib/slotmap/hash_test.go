package slotmap

import (
	"testing"
)

func TestFinalizeDeterminism(t *testing.T) {
	inputs := []uint64{0, 1, 42, 1 << 32, ^uint64(0)}
	for _, in := range inputs {
		if Finalize(in) != Finalize(in) {
			t.Errorf("Finalize(%d) is not deterministic", in)
		}
	}
}

func TestFinalizeAvalanche(t *testing.T) {
	// sequential inputs must not produce correlated low bits
	const n = 1 << 12
	const mask = 15
	var buckets [16]int
	for i := uint64(0); i < n; i++ {
		buckets[Finalize(i)&mask]++
	}

	// with good mixing every bucket holds roughly n/16 entries
	expected := n / 16
	for b, count := range buckets {
		if count < expected/2 || count > expected*2 {
			t.Errorf("bucket %d badly skewed: %d entries (expected around %d)", b, count, expected)
		}
	}
}

func TestFinalizeSpreadsLowEntropyInputs(t *testing.T) {
	// inputs differing only in high bits must still spread across low bits
	seen := make(map[uint64]bool)
	for i := uint64(0); i < 64; i++ {
		seen[Finalize(i<<56)&15] = true
	}
	if len(seen) < 8 {
		t.Errorf("high-bit-only inputs hit just %d of 16 buckets", len(seen))
	}
}

func TestCeilPow2(t *testing.T) {
	cases := map[int]int{
		0: 1, 1: 1, 2: 2, 3: 4, 4: 4, 5: 8, 8: 8, 9: 16, 1000: 1024,
	}
	for in, want := range cases {
		if got := ceilPow2(in); got != want {
			t.Errorf("ceilPow2(%d): expected %d, got %d", in, want, got)
		}
	}
}

func TestDefaultHasherSeedIsolation(t *testing.T) {
	// two default hashers must hash the same key differently (per-map seed)
	h1 := defaultHasher[string]()
	h2 := defaultHasher[string]()
	same := 0
	keys := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	for _, k := range keys {
		if h1(k, 0) == h2(k, 0) {
			same++
		}
	}
	if same == len(keys) {
		t.Errorf("two hasher instances agree on all keys; seeding is broken")
	}
}
