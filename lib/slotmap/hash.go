package slotmap

import (
	"hash/maphash"
	"math/bits"
)

// --------------------------------------------------------------------------
// Hash Finalizer
// --------------------------------------------------------------------------

// Finalization constants of the splitmix64 mixer.
const (
	mixMul1 = 0xbf58476d1ce4e5b9
	mixMul2 = 0x94d049bb133111eb
)

// Finalize applies a 64-bit avalanche mixing step to a raw hash so that
// patterns in the input (sequential integers, aligned pointers) do not
// concentrate keys on few shards. Pure, allocation-free, O(1).
//
// Thread-safety: This function is stateless and safe for concurrent use.
func Finalize(h uint64) uint64 {
	h ^= h >> 30
	h *= mixMul1
	h ^= h >> 27
	h *= mixMul2
	h ^= h >> 31
	return h
}

// --------------------------------------------------------------------------
// Raw Hashing
// --------------------------------------------------------------------------

// Hasher turns a key and a per-map seed into a raw 64-bit hash. The result
// does not have to be well distributed; routing finalizes it first.
type Hasher[K comparable] func(key K, seed uint64) uint64

// defaultHasher builds the default raw hash function for a key type using
// the runtime-backed maphash. The maphash seed already randomizes the hash
// per map instance, so the uint64 seed parameter is left to custom hashers.
func defaultHasher[K comparable]() Hasher[K] {
	seed := maphash.MakeSeed()
	return func(key K, _ uint64) uint64 {
		return maphash.Comparable(seed, key)
	}
}

// ceilPow2 rounds n up to the next power of two. Shard counts are forced to
// powers of two so routing can mask instead of divide.
func ceilPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
