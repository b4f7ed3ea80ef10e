package testing

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/jgrimm/slotmap/lib/slotmap"
)

// MapFactory is a function that creates a new instance of an IMap
// implementation under test.
type MapFactory func() slotmap.IMap[string, string]

// RunMapTests runs a comprehensive test suite for an IMap implementation.
func RunMapTests(t *testing.T, name string, factory MapFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("Add&Get", func(t *testing.T) {
			testAddGet(t, factory())
		})

		t.Run("TryAdd", func(t *testing.T) {
			testTryAdd(t, factory())
		})

		t.Run("Remove", func(t *testing.T) {
			testRemove(t, factory())
		})

		t.Run("GetOrDefault", func(t *testing.T) {
			testGetOrDefault(t, factory())
		})

		t.Run("Contains&Inspect", func(t *testing.T) {
			testContainsInspect(t, factory())
		})

		t.Run("Update", func(t *testing.T) {
			testUpdate(t, factory())
		})

		t.Run("ComputeIfAbsent", func(t *testing.T) {
			testComputeIfAbsent(t, factory())
		})

		t.Run("Merge", func(t *testing.T) {
			testMerge(t, factory())
		})

		t.Run("RemoveIf&UpdateIf", func(t *testing.T) {
			testRemoveIfUpdateIf(t, factory())
		})

		t.Run("ForEach&Find", func(t *testing.T) {
			testForEachFind(t, factory())
		})

		t.Run("Size&Clear&Reserve", func(t *testing.T) {
			testSizeClearReserve(t, factory())
		})

		t.Run("CollisionHandling", func(t *testing.T) {
			testCollisionHandling(t, factory())
		})

		t.Run("ConcurrentAccess", func(t *testing.T) {
			testConcurrentAccess(t, factory())
		})

		t.Run("RealisticUsage", func(t *testing.T) {
			testRealisticUsage(t, factory())
		})
	})
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testAddGet(t *testing.T, m slotmap.IMap[string, string]) {
	testKey := "test-key"

	if prior, replaced := m.Add(testKey, "v1"); replaced {
		t.Errorf("expected insert, got replaced with prior %q", prior)
	}

	result, exists := m.Get(testKey)
	if !exists {
		t.Errorf("expected key %s to exist after Add", testKey)
	}
	if result != "v1" {
		t.Errorf("expected value v1, got %s", result)
	}

	if prior, replaced := m.Add(testKey, "v2"); !replaced || prior != "v1" {
		t.Errorf("expected replace returning prior v1, got (%q, %v)", prior, replaced)
	}

	result, exists = m.Get(testKey)
	if !exists || result != "v2" {
		t.Errorf("expected value v2 after overwrite, got (%q, %v)", result, exists)
	}

	if _, exists = m.Get("nonexistent-key"); exists {
		t.Errorf("expected nonexistent key to return exists=false")
	}
}

func testTryAdd(t *testing.T, m slotmap.IMap[string, string]) {
	if !m.TryAdd("key", "v1") {
		t.Errorf("expected first TryAdd to succeed")
	}
	if m.TryAdd("key", "v2") {
		t.Errorf("expected second TryAdd to fail")
	}
	if v, _ := m.Get("key"); v != "v1" {
		t.Errorf("expected TryAdd to never overwrite, got %q", v)
	}
}

func testRemove(t *testing.T, m slotmap.IMap[string, string]) {
	m.Add("key", "value")

	prior, loaded := m.Remove("key")
	if !loaded || prior != "value" {
		t.Errorf("expected Remove to return prior value, got (%q, %v)", prior, loaded)
	}
	if _, exists := m.Get("key"); exists {
		t.Errorf("expected key to be gone after Remove")
	}
	if _, loaded = m.Remove("key"); loaded {
		t.Errorf("expected second Remove to report absence")
	}
}

func testGetOrDefault(t *testing.T, m slotmap.IMap[string, string]) {
	m.Add("key", "value")

	if v := m.GetOrDefault("key", "default"); v != "value" {
		t.Errorf("expected stored value, got %q", v)
	}
	if v := m.GetOrDefault("missing", "default"); v != "default" {
		t.Errorf("expected default, got %q", v)
	}
	if m.Contains("missing") {
		t.Errorf("expected GetOrDefault to not store the default")
	}
}

func testContainsInspect(t *testing.T, m slotmap.IMap[string, string]) {
	m.Add("key", "value")

	if !m.Contains("key") || m.Contains("missing") {
		t.Errorf("Contains gave wrong presence info")
	}

	seen := ""
	if !m.Inspect("key", func(v *string) { seen = *v }) {
		t.Errorf("expected Inspect to find the key")
	}
	if seen != "value" {
		t.Errorf("expected Inspect callback to see the value, got %q", seen)
	}

	called := false
	if m.Inspect("missing", func(v *string) { called = true }) {
		t.Errorf("expected Inspect to miss")
	}
	if called {
		t.Errorf("expected Inspect to not invoke the callback on a miss")
	}
}

func testUpdate(t *testing.T, m slotmap.IMap[string, string]) {
	m.Add("key", "value")

	if !m.Update("key", func(v *string) { *v = *v + "!" }) {
		t.Errorf("expected Update to find the key")
	}
	if v, _ := m.Get("key"); v != "value!" {
		t.Errorf("expected in-place mutation to be visible, got %q", v)
	}

	if m.Update("missing", func(v *string) { *v = "x" }) {
		t.Errorf("expected Update to report absence")
	}
	if m.Contains("missing") {
		t.Errorf("expected Update to not create entries")
	}
}

func testComputeIfAbsent(t *testing.T, m slotmap.IMap[string, string]) {
	var createCalls atomic.Int32

	create := func() string {
		createCalls.Add(1)
		return "created"
	}

	seen := ""
	m.ComputeIfAbsent("key", create, func(v *string) { seen = *v })
	if got := createCalls.Load(); got != 1 {
		t.Errorf("expected exactly one create call on a miss, got %d", got)
	}
	if seen != "created" {
		t.Errorf("expected access callback to see the inserted value, got %q", seen)
	}

	m.ComputeIfAbsent("key", create, func(v *string) { seen = *v })
	if got := createCalls.Load(); got != 1 {
		t.Errorf("expected zero create calls when the key is present, got %d", got)
	}
	if seen != "created" {
		t.Errorf("expected access callback to see the existing value, got %q", seen)
	}

	// nil access is allowed
	m.ComputeIfAbsent("other", create, nil)
	if v, ok := m.Get("other"); !ok || v != "created" {
		t.Errorf("expected insert with nil access callback, got (%q, %v)", v, ok)
	}
}

func testMerge(t *testing.T, m slotmap.IMap[string, string]) {
	concat := func(existing, incoming string) (string, bool) {
		return existing + incoming, true
	}

	// absent key: insert directly, remap must not run
	m.Merge("key", "a", func(existing, incoming string) (string, bool) {
		t.Errorf("remap must not be called for an absent key")
		return "", false
	})
	if v, _ := m.Get("key"); v != "a" {
		t.Errorf("expected direct insert on miss, got %q", v)
	}

	// present key: remap result replaces the value
	m.Merge("key", "b", concat)
	if v, _ := m.Get("key"); v != "ab" {
		t.Errorf("expected merged value ab, got %q", v)
	}

	// remap returning false erases the entry
	m.Merge("key", "c", func(existing, incoming string) (string, bool) {
		return "", false
	})
	if m.Contains("key") {
		t.Errorf("expected entry to be erased by remap returning false")
	}
}

func testRemoveIfUpdateIf(t *testing.T, m slotmap.IMap[string, string]) {
	for i := 0; i < 100; i++ {
		m.Add(fmt.Sprintf("key-%02d", i), fmt.Sprintf("value-%02d", i))
	}

	removed := m.RemoveIf(func(key string, v string) bool {
		return key < "key-50"
	})
	if removed != 50 {
		t.Errorf("expected 50 removals, got %d", removed)
	}
	if m.Size() != 50 {
		t.Errorf("expected 50 remaining entries, got %d", m.Size())
	}

	updated := m.UpdateIf(func(key string, v *string) bool {
		*v = "updated"
		return true
	})
	if updated != 50 {
		t.Errorf("expected 50 updates, got %d", updated)
	}
	if v, _ := m.Get("key-75"); v != "updated" {
		t.Errorf("expected UpdateIf mutation to stick, got %q", v)
	}

	// predicates returning false count nothing and change nothing
	if n := m.RemoveIf(func(string, string) bool { return false }); n != 0 {
		t.Errorf("expected no removals, got %d", n)
	}
	if n := m.UpdateIf(func(string, *string) bool { return false }); n != 0 {
		t.Errorf("expected no updates, got %d", n)
	}
}

func testForEachFind(t *testing.T, m slotmap.IMap[string, string]) {
	for i := 0; i < 20; i++ {
		m.Add(fmt.Sprintf("key-%02d", i), "value")
	}

	visited := 0
	m.ForEach(func(key string, v string) { visited++ })
	if visited != 20 {
		t.Errorf("expected ForEach to visit 20 entries, got %d", visited)
	}

	// early stop after 5 visits
	visited = 0
	completed := m.ForEachUntil(func(key string, v string) bool {
		visited++
		return visited == 5
	})
	if completed {
		t.Errorf("expected early stop to report completed=false")
	}
	if visited != 5 {
		t.Errorf("expected exactly 5 visits before the stop, got %d", visited)
	}

	// a full scan reports completion
	if !m.ForEachUntil(func(string, string) bool { return false }) {
		t.Errorf("expected full scan to report completed=true")
	}

	v, found := m.Find(func(key string, v string) bool { return key == "key-07" })
	if !found || v != "value" {
		t.Errorf("expected Find to locate key-07, got (%q, %v)", v, found)
	}
	if _, found = m.Find(func(string, string) bool { return false }); found {
		t.Errorf("expected Find with false predicate to miss")
	}
}

func testSizeClearReserve(t *testing.T, m slotmap.IMap[string, string]) {
	if m.Size() != 0 {
		t.Errorf("expected new map to be empty, size=%d", m.Size())
	}

	for i := 0; i < 64; i++ {
		m.Add(fmt.Sprintf("key-%d", i), "value")
	}
	if m.Size() != 64 {
		t.Errorf("expected size 64, got %d", m.Size())
	}

	// size must agree with a full traversal when nothing mutates concurrently
	count := 0
	m.ForEach(func(string, string) { count++ })
	if count != m.Size() {
		t.Errorf("ForEach count %d disagrees with Size %d", count, m.Size())
	}

	// clear is idempotent
	m.Clear()
	if m.Size() != 0 {
		t.Errorf("expected size 0 after Clear, got %d", m.Size())
	}
	m.Clear()
	if m.Size() != 0 {
		t.Errorf("expected size 0 after second Clear, got %d", m.Size())
	}

	// reserve must not disturb existing entries
	m.Add("keep", "value")
	m.Reserve(10_000)
	if v, ok := m.Get("keep"); !ok || v != "value" {
		t.Errorf("expected entry to survive Reserve, got (%q, %v)", v, ok)
	}
}

func testCollisionHandling(t *testing.T, m slotmap.IMap[string, string]) {
	const numKeys = 10_000

	for i := 0; i < numKeys; i++ {
		m.Add(fmt.Sprintf("key-%d", i), fmt.Sprintf("value-%d", i))
	}
	if m.Size() != numKeys {
		t.Errorf("expected %d entries, got %d", numKeys, m.Size())
	}
	for i := 0; i < numKeys; i++ {
		want := fmt.Sprintf("value-%d", i)
		if v, ok := m.Get(fmt.Sprintf("key-%d", i)); !ok || v != want {
			t.Errorf("key-%d: expected %q, got (%q, %v)", i, want, v, ok)
		}
	}
}

func testConcurrentAccess(t *testing.T, m slotmap.IMap[string, string]) {
	const (
		numWorkers = 8
		numKeys    = 512
		numRounds  = 200
	)

	var wg sync.WaitGroup
	wg.Add(numWorkers)

	for w := 0; w < numWorkers; w++ {
		go func(worker int) {
			defer wg.Done()
			for round := 0; round < numRounds; round++ {
				for i := 0; i < numKeys; i++ {
					key := fmt.Sprintf("key-%d", i)
					switch (worker + round + i) % 4 {
					case 0:
						m.Add(key, "value")
					case 1:
						m.Get(key)
					case 2:
						m.Update(key, func(v *string) { *v = "updated" })
					case 3:
						m.GetOrDefault(key, "default")
					}
				}
			}
		}(w)
	}
	wg.Wait()

	// every surviving entry must hold one of the two written values
	m.ForEach(func(key string, v string) {
		if v != "value" && v != "updated" {
			t.Errorf("key %s holds torn or foreign value %q", key, v)
		}
	})
}

func testRealisticUsage(t *testing.T, m slotmap.IMap[string, string]) {
	// session-cache style usage: populate, touch, expire a subset, re-check
	for i := 0; i < 1000; i++ {
		m.ComputeIfAbsent(fmt.Sprintf("session-%d", i), func() string { return "fresh" }, nil)
	}

	touched := m.UpdateIf(func(key string, v *string) bool {
		if key[len(key)-1] == '0' {
			*v = "touched"
			return true
		}
		return false
	})
	if touched != 100 {
		t.Errorf("expected 100 touched sessions, got %d", touched)
	}

	evicted := m.RemoveIf(func(key string, v string) bool { return v == "fresh" })
	if evicted != 900 {
		t.Errorf("expected 900 evictions, got %d", evicted)
	}
	if m.Size() != 100 {
		t.Errorf("expected 100 sessions left, got %d", m.Size())
	}

	m.ForEach(func(key string, v string) {
		if v != "touched" {
			t.Errorf("expected only touched sessions to survive, found %q", v)
		}
	})
}
