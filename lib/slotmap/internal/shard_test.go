package internal

import (
	"testing"
)

func TestShardBasicOperations(t *testing.T) {
	s := NewShard[string, int](0, false)

	if _, ok := s.Get("a"); ok {
		t.Errorf("expected empty shard to miss")
	}

	if _, replaced := s.Add("a", 1); replaced {
		t.Errorf("expected first Add to insert, not replace")
	}
	if prior, replaced := s.Add("a", 2); !replaced || prior != 1 {
		t.Errorf("expected Add to return prior value 1, got (%d, %v)", prior, replaced)
	}

	if v, ok := s.Get("a"); !ok || v != 2 {
		t.Errorf("expected a=2, got (%d, %v)", v, ok)
	}
	if !s.Contains("a") || s.Contains("b") {
		t.Errorf("Contains gave wrong presence info")
	}
	if v := s.GetOrDefault("missing", 42); v != 42 {
		t.Errorf("expected default 42, got %d", v)
	}

	if prior, ok := s.Remove("a"); !ok || prior != 2 {
		t.Errorf("expected Remove to return 2, got (%d, %v)", prior, ok)
	}
	if s.Size() != 0 {
		t.Errorf("expected empty shard after Remove, size=%d", s.Size())
	}
}

func TestShardPoolRecycling(t *testing.T) {
	s := NewShard[int, string](0, true)

	for i := 0; i < 10; i++ {
		s.Add(i, "v")
	}
	if got := s.PoolLen(); got != 0 {
		t.Errorf("expected empty pool before removals, got %d", got)
	}

	for i := 0; i < 10; i++ {
		s.Remove(i)
	}
	if got := s.PoolLen(); got != 10 {
		t.Errorf("expected 10 pooled nodes after removals, got %d", got)
	}

	// inserts must drain the free list before allocating
	for i := 0; i < 10; i++ {
		s.Add(i, "v")
	}
	if got := s.PoolLen(); got != 0 {
		t.Errorf("expected pool drained by inserts, got %d", got)
	}
}

func TestShardPoolDisabled(t *testing.T) {
	s := NewShard[int, string](0, false)
	s.Add(1, "v")
	s.Remove(1)
	if got := s.PoolLen(); got != 0 {
		t.Errorf("expected disabled pool to stay empty, got %d", got)
	}
}

func TestShardClearRecycles(t *testing.T) {
	s := NewShard[int, int](0, true)
	for i := 0; i < 5; i++ {
		s.Add(i, i)
	}
	s.Clear()
	if s.Size() != 0 {
		t.Errorf("expected cleared shard to be empty, size=%d", s.Size())
	}
	if got := s.PoolLen(); got != 5 {
		t.Errorf("expected 5 recycled nodes after Clear, got %d", got)
	}
}

func TestShardReserveKeepsEntries(t *testing.T) {
	s := NewShard[int, int](0, false)
	for i := 0; i < 8; i++ {
		s.Add(i, i*i)
	}
	s.Reserve(1024)
	if s.Size() != 8 {
		t.Errorf("expected 8 entries after Reserve, got %d", s.Size())
	}
	for i := 0; i < 8; i++ {
		if v, ok := s.Get(i); !ok || v != i*i {
			t.Errorf("entry %d lost or corrupted after Reserve: (%d, %v)", i, v, ok)
		}
	}
}

func TestShardCallbackPanicReleasesLock(t *testing.T) {
	s := NewShard[string, int](0, false)
	s.Add("a", 1)

	func() {
		defer func() {
			if recover() == nil {
				t.Errorf("expected panic from callback to propagate")
			}
		}()
		s.Update("a", func(v *int) { panic("boom") })
	}()

	// the write lock must have been released on the panic path
	if v, ok := s.Get("a"); !ok || v != 1 {
		t.Errorf("expected a=1 after panicking callback, got (%d, %v)", v, ok)
	}
	s.Add("b", 2)
	if s.Size() != 2 {
		t.Errorf("expected shard usable after panic, size=%d", s.Size())
	}
}
