package lrucache

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"testing"
)

// checkInvariants walks the recency list in both directions and verifies it
// agrees with the index and the sequence stamps.
func checkInvariants[K comparable, V any](t *testing.T, c *Cache[K, V]) {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.index) > c.capacity {
		t.Fatalf("size %d exceeds capacity %d", len(c.index), c.capacity)
	}

	n := 0
	lastSeq := c.seq + 1
	for i := c.entries[sentinel].next; i != sentinel; i = c.entries[i].next {
		n++
		if n > len(c.index) {
			t.Fatalf("recency list longer than index (%d entries)", len(c.index))
		}
		e := c.entries[i]
		if got, ok := c.index[e.key]; !ok || got != i {
			t.Fatalf("index[%v] = %d, %v; want %d", e.key, got, ok, i)
		}
		if e.seq >= lastSeq {
			t.Fatalf("seq not strictly decreasing along list: %d after %d", e.seq, lastSeq)
		}
		lastSeq = e.seq
		if c.entries[e.next].prev != i {
			t.Fatalf("broken back link at slot %d", i)
		}
	}
	if n != len(c.index) {
		t.Fatalf("recency list has %d entries, index has %d", n, len(c.index))
	}
}

func TestNew_InvalidCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1, -1_000_000} {
		t.Run(fmt.Sprint(capacity), func(t *testing.T) {
			c, err := New[string, int](capacity)
			if !errors.Is(err, ErrInvalidCapacity) {
				t.Errorf("New(%d) error = %v, want ErrInvalidCapacity", capacity, err)
			}
			if c != nil {
				t.Errorf("New(%d) returned non-nil cache", capacity)
			}
		})
	}
}

func TestNew_LargeCapacityAllocatesLazily(t *testing.T) {
	c, err := New[string, string](1_000_000)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if c.Cap() != 1_000_000 {
		t.Errorf("Cap() = %d, want 1000000", c.Cap())
	}
	if got := cap(c.entries); got > 65 {
		t.Errorf("arena capacity = %d, want <= 65", got)
	}
}

func TestCache_RecencyCorrectness(t *testing.T) {
	c, err := New[string, int](2)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	c.Put("A", 1)
	c.Put("B", 2)
	if evicted := c.Put("C", 3); !evicted {
		t.Error("Put(C) should evict")
	}

	if _, ok := c.Get("A"); ok {
		t.Error("Get(A) should miss after eviction")
	}
	if _, ok := c.Get("B"); !ok {
		t.Error("Get(B) should hit")
	}
	if _, ok := c.Get("C"); !ok {
		t.Error("Get(C) should hit")
	}
	checkInvariants(t, c)
}

func TestCache_AccessPromotes(t *testing.T) {
	c, err := New[string, int](2)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	c.Put("A", 1)
	c.Put("B", 2)
	c.Get("A")
	c.Put("C", 3)

	if _, ok := c.Get("B"); ok {
		t.Error("Get(B) should miss, B was least recently used")
	}
	if v, ok := c.Get("A"); !ok || v != 1 {
		t.Errorf("Get(A) = %d, %v; want 1, true", v, ok)
	}
	checkInvariants(t, c)
}

func TestCache_PutPromotesExisting(t *testing.T) {
	c, err := New[string, int](2)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	c.Put("A", 1)
	c.Put("B", 2)
	c.Put("A", 10)
	c.Put("C", 3)

	if c.Contains("B") {
		t.Error("B should have been evicted")
	}
	if v, _ := c.Get("A"); v != 10 {
		t.Errorf("Get(A) = %d, want 10", v)
	}
}

func TestCache_OverwritePreservesSize(t *testing.T) {
	c, err := New[string, string](4)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	c.Put("A", "v1")
	if evicted := c.Put("A", "v2"); evicted {
		t.Error("overwrite should not evict")
	}

	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	if v, ok := c.Get("A"); !ok || v != "v2" {
		t.Errorf("Get(A) = %q, %v; want %q, true", v, ok, "v2")
	}
}

func TestCache_IdempotentMiss(t *testing.T) {
	c, err := New[string, int](3)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	c.Put("A", 1)

	for range 3 {
		if v, ok := c.Get("missing"); ok || v != 0 {
			t.Errorf("Get(missing) = %d, %v; want 0, false", v, ok)
		}
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	if got := c.Keys(); !slices.Equal(got, []string{"A"}) {
		t.Errorf("Keys() = %v, want [A]", got)
	}
}

func TestCache_EndToEndScenario(t *testing.T) {
	c, err := New[string, int](2)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	c.Put("A", 1)
	c.Put("B", 2)
	if v, ok := c.Get("A"); !ok || v != 1 {
		t.Fatalf("Get(A) = %d, %v; want 1, true", v, ok)
	}
	c.Put("C", 3)
	if _, ok := c.Get("B"); ok {
		t.Fatal("Get(B) should miss")
	}
	if v, ok := c.Get("C"); !ok || v != 3 {
		t.Fatalf("Get(C) = %d, %v; want 3, true", v, ok)
	}
	if v, ok := c.Get("A"); !ok || v != 1 {
		t.Fatalf("Get(A) = %d, %v; want 1, true", v, ok)
	}
	checkInvariants(t, c)
}

func TestCache_CapacityInvariant(t *testing.T) {
	const capacity = 16
	c, err := New[int, int](capacity)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	rng := rand.New(rand.NewPCG(1, 2))
	for i := range 10_000 {
		k := rng.IntN(64)
		switch rng.IntN(4) {
		case 0:
			c.Get(k)
		case 1:
			c.Remove(k)
		default:
			c.Put(k, i)
		}
		if c.Len() > capacity {
			t.Fatalf("Len() = %d after op %d, exceeds capacity", c.Len(), i)
		}
	}
	checkInvariants(t, c)
}

func TestCache_NilValueIsNotAMiss(t *testing.T) {
	c, err := New[string, *int](2)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	c.Put("nil", nil)
	v, ok := c.Get("nil")
	if !ok {
		t.Error("Get(nil) should hit for a stored nil value")
	}
	if v != nil {
		t.Errorf("Get(nil) = %v, want nil", v)
	}
}

func TestCache_PeekDoesNotPromote(t *testing.T) {
	c, err := New[string, int](2)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	c.Put("A", 1)
	c.Put("B", 2)
	if v, ok := c.Peek("A"); !ok || v != 1 {
		t.Errorf("Peek(A) = %d, %v; want 1, true", v, ok)
	}
	c.Put("C", 3)

	if c.Contains("A") {
		t.Error("A should be evicted, Peek must not promote")
	}
}

func TestCache_RemoveReusesSlot(t *testing.T) {
	c, err := New[string, int](3)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	c.Put("A", 1)
	c.Put("B", 2)
	if !c.Remove("A") {
		t.Error("Remove(A) = false, want true")
	}
	if c.Remove("A") {
		t.Error("second Remove(A) = true, want false")
	}
	arena := len(c.entries)
	c.Put("C", 3)
	if len(c.entries) != arena {
		t.Errorf("arena grew from %d to %d, freed slot not reused", arena, len(c.entries))
	}
	if got := c.Keys(); !slices.Equal(got, []string{"C", "B"}) {
		t.Errorf("Keys() = %v, want [C B]", got)
	}
	checkInvariants(t, c)
}

func TestCache_KeysOrder(t *testing.T) {
	c, err := New[int, int](4)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for i := 1; i <= 4; i++ {
		c.Put(i, i)
	}
	c.Get(2)
	c.Put(5, 5)

	want := []int{5, 2, 4, 3}
	if got := c.Keys(); !slices.Equal(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}

func TestCache_EvictCallback(t *testing.T) {
	var evicted []string
	c, err := New[string, int](2, WithEvictCallback(func(k string, v int) {
		evicted = append(evicted, fmt.Sprintf("%s=%d", k, v))
	}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	c.Put("A", 1)
	c.Put("B", 2)
	c.Put("C", 3)
	c.Remove("B")
	c.Put("D", 4)
	c.Purge()

	want := []string{"A=1", "C=3", "D=4"}
	if !slices.Equal(evicted, want) {
		t.Errorf("evicted = %v, want %v", evicted, want)
	}
	if c.Len() != 0 {
		t.Errorf("Len() after Purge = %d, want 0", c.Len())
	}
	checkInvariants(t, c)
}

func TestCache_EvictCallbackMayReenter(t *testing.T) {
	var c *Cache[int, int]
	var err error
	c, err = New[int, int](1, WithEvictCallback(func(k, v int) {
		c.Contains(k)
	}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	c.Put(1, 1)
	c.Put(2, 2)
}

func TestCache_DeterministicReplay(t *testing.T) {
	replay := func() []int {
		c, err := New[int, int](8)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		rng := rand.New(rand.NewPCG(42, 42))
		for i := range 5_000 {
			k := rng.IntN(32)
			if rng.IntN(2) == 0 {
				c.Get(k)
			} else {
				c.Put(k, i)
			}
		}
		return c.Keys()
	}

	first, second := replay(), replay()
	if !slices.Equal(first, second) {
		t.Errorf("replay produced different orders: %v vs %v", first, second)
	}
}

func TestCache_ConcurrentAccess(t *testing.T) {
	const (
		capacity   = 32
		goroutines = 16
		ops        = 2_000
	)
	c, err := New[int, [2]int](capacity)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, goroutines)
	for g := range goroutines {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			rng := rand.New(rand.NewPCG(uint64(id), 7))
			for i := range ops {
				k := rng.IntN(64)
				if rng.IntN(2) == 0 {
					// Key and payload must always agree.
					c.Put(k, [2]int{k, i})
					continue
				}
				if v, ok := c.Get(k); ok && v[0] != k {
					errs <- fmt.Errorf("Get(%d) returned payload for key %d", k, v[0])
					return
				}
				if n := c.Len(); n > capacity {
					errs <- fmt.Errorf("Len() = %d exceeds capacity", n)
					return
				}
			}
		}(g)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
	checkInvariants(t, c)
}

func BenchmarkCache_GetHit(b *testing.B) {
	c, err := New[string, string](1_000_000)
	if err != nil {
		b.Fatalf("New() error = %v", err)
	}
	c.Put("MixedCaseString", "MIXEDCASESTRING")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get("MixedCaseString")
	}
}

func BenchmarkCache_PutEvict(b *testing.B) {
	c, err := New[int, int](1024)
	if err != nil {
		b.Fatalf("New() error = %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Put(i, i)
	}
}

func BenchmarkCache_Parallel(b *testing.B) {
	c, err := New[int, int](1024)
	if err != nil {
		b.Fatalf("New() error = %v", err)
	}

	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			if _, ok := c.Get(i % 2048); !ok {
				c.Put(i%2048, i)
			}
			i++
		}
	})
}
