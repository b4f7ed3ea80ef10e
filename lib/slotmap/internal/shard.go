package internal

import (
	"sync"
)

// --------------------------------------------------------------------------
// Shard Type (partition of the map)
// --------------------------------------------------------------------------

// Shard is one partition of a striped map: a hash table of unique keys
// guarded by a reader/writer lock. Read-style operations take the shared
// lock and may run in parallel; every mutation takes the exclusive lock.
//
// All locks are released via defer, so a panicking caller-supplied callback
// never leaks a lock.
type Shard[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]*node[V]
	pool  nodePool[V]
}

// NewShard creates an empty shard. sizeHint pre-sizes the table, pooled
// enables the private node free list.
func NewShard[K comparable, V any](sizeHint int, pooled bool) *Shard[K, V] {
	poolCap := 0
	if pooled {
		poolCap = defaultPoolCap
	}
	return &Shard[K, V]{
		items: make(map[K]*node[V], sizeHint),
		pool:  newNodePool[V](poolCap),
	}
}

// --------------------------------------------------------------------------
// Read Operations (shared lock)
// --------------------------------------------------------------------------

// Get returns a copy of the value stored for key.
func (s *Shard[K, V]) Get(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if nd, ok := s.items[key]; ok {
		return nd.val, true
	}
	var zero V
	return zero, false
}

// GetOrDefault returns a copy of the value stored for key, or def if the
// key is absent. The default is never stored.
func (s *Shard[K, V]) GetOrDefault(key K, def V) V {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if nd, ok := s.items[key]; ok {
		return nd.val
	}
	return def
}

// Contains reports whether key is present.
func (s *Shard[K, V]) Contains(key K) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.items[key]
	return ok
}

// Inspect invokes fn with a reference to the stored value while holding the
// read lock and reports whether the key was present. fn must not write
// through the reference and must not re-enter the shard.
func (s *Shard[K, V]) Inspect(key K, fn func(v *V)) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	nd, ok := s.items[key]
	if !ok {
		return false
	}
	fn(&nd.val)
	return true
}

// ForEach invokes fn for every entry. The read lock is held for the whole
// scan, iteration order is unspecified. fn receives a copy of the value.
func (s *Shard[K, V]) ForEach(fn func(key K, v V)) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for k, nd := range s.items {
		fn(k, nd.val)
	}
}

// ForEachUntil is like ForEach but stops as soon as fn returns true.
// It reports whether the scan ran to completion.
func (s *Shard[K, V]) ForEachUntil(fn func(key K, v V) bool) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for k, nd := range s.items {
		if fn(k, nd.val) {
			return false
		}
	}
	return true
}

// Find returns a copy of the first value (in iteration order) for which
// pred holds.
func (s *Shard[K, V]) Find(pred func(key K, v V) bool) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for k, nd := range s.items {
		if pred(k, nd.val) {
			return nd.val, true
		}
	}
	var zero V
	return zero, false
}

// Size returns the current entry count of this shard.
func (s *Shard[K, V]) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.items)
}

// --------------------------------------------------------------------------
// Write Operations (exclusive lock)
// --------------------------------------------------------------------------

// Add inserts or replaces the value for key and returns the prior value if
// one was present (upsert).
func (s *Shard[K, V]) Add(key K, value V) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if nd, ok := s.items[key]; ok {
		prior := nd.val
		nd.val = value
		return prior, true
	}
	nd := s.pool.Get()
	nd.val = value
	s.items[key] = nd
	var zero V
	return zero, false
}

// TryAdd inserts value only if key is absent. It never overwrites.
func (s *Shard[K, V]) TryAdd(key K, value V) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[key]; ok {
		return false
	}
	nd := s.pool.Get()
	nd.val = value
	s.items[key] = nd
	return true
}

// Update invokes fn with a mutable reference to the stored value under the
// write lock and reports whether the key was present.
func (s *Shard[K, V]) Update(key K, fn func(v *V)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	nd, ok := s.items[key]
	if !ok {
		return false
	}
	fn(&nd.val)
	return true
}

// UpdateIf visits every entry under the write lock. pred may mutate the
// value in place; it returns whether the entry counts as updated. UpdateIf
// returns how many entries pred reported as updated. The shard stays locked
// for the whole scan, not per entry.
func (s *Shard[K, V]) UpdateIf(pred func(key K, v *V) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for k, nd := range s.items {
		if pred(k, &nd.val) {
			count++
		}
	}
	return count
}

// ComputeIfAbsent inserts create() if key is absent, then invokes access
// (if non-nil) with a reference to the stored value, all under one write
// lock acquisition. create is only called on a miss.
func (s *Shard[K, V]) ComputeIfAbsent(key K, create func() V, access func(v *V)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	nd, ok := s.items[key]
	if !ok {
		nd = s.pool.Get()
		nd.val = create()
		s.items[key] = nd
	}
	if access != nil {
		access(&nd.val)
	}
}

// Merge combines value with an existing entry. If key is absent, value is
// inserted directly and remap is not called. If key is present, remap
// receives the existing and the incoming value; its result replaces the
// entry when ok is true and erases the entry when ok is false.
func (s *Shard[K, V]) Merge(key K, value V, remap func(existing, incoming V) (V, bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	nd, ok := s.items[key]
	if !ok {
		nd = s.pool.Get()
		nd.val = value
		s.items[key] = nd
		return
	}
	merged, keep := remap(nd.val, value)
	if !keep {
		delete(s.items, key)
		s.pool.Put(nd)
		return
	}
	nd.val = merged
}

// Remove deletes the entry for key and returns a copy of the prior value.
func (s *Shard[K, V]) Remove(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	nd, ok := s.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	prior := nd.val
	delete(s.items, key)
	s.pool.Put(nd)
	return prior, true
}

// RemoveIf deletes every entry for which pred holds and returns the number
// of entries removed. The shard stays locked for the whole scan.
func (s *Shard[K, V]) RemoveIf(pred func(key K, v V) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for k, nd := range s.items {
		if pred(k, nd.val) {
			delete(s.items, k)
			s.pool.Put(nd)
			count++
		}
	}
	return count
}

// Clear empties the shard's table.
func (s *Shard[K, V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, nd := range s.items {
		delete(s.items, k)
		s.pool.Put(nd)
	}
}

// Reserve pre-sizes the table for at least hint entries. Go maps cannot
// grow their backing storage in place, so a larger table is allocated and
// the entries are moved over.
func (s *Shard[K, V]) Reserve(hint int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if hint <= len(s.items) {
		return
	}
	items := make(map[K]*node[V], hint)
	for k, nd := range s.items {
		items[k] = nd
	}
	s.items = items
}

// PoolLen reports how many recycled nodes the shard's free list holds.
// Exposed for statistics and tests.
func (s *Shard[K, V]) PoolLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.pool.Len()
}
