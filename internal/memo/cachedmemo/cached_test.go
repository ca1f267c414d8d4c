package cachedmemo

import (
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/yogurtpowered/lrucache/internal/stats"
	promstats "github.com/yogurtpowered/lrucache/internal/stats/prometheus"
)

// fakeBackend is a simple map backend for testing.
type fakeBackend struct {
	mu   sync.Mutex
	data map[string]string
	sets int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{data: make(map[string]string)}
}

func (b *fakeBackend) Get(key string) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.data[key]
	return v, ok
}

func (b *fakeBackend) Set(key, value string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sets++
	b.data[key] = value
}

func (b *fakeBackend) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.data)
}

func TestStrategy_CacheHit(t *testing.T) {
	backend := newFakeBackend()
	backend.Set("MixedCaseString", "cached")

	s := New("fake", backend)

	if got := s.Upper("MixedCaseString"); got != "cached" {
		t.Errorf("Upper() = %q, want %q", got, "cached")
	}
	if st := s.Stats(); st.Hits != 1 || st.Misses != 0 {
		t.Errorf("Stats() = %+v, want 1 hit 0 misses", st)
	}
}

func TestStrategy_CacheMiss(t *testing.T) {
	backend := newFakeBackend()
	s := New("fake", backend)

	if got := s.Upper("MixedCaseString"); got != "MIXEDCASESTRING" {
		t.Errorf("Upper() = %q, want %q", got, "MIXEDCASESTRING")
	}
	if _, ok := backend.data["MixedCaseString"]; !ok {
		t.Error("value should be cached after miss")
	}

	s.Upper("MixedCaseString")
	st := s.Stats()
	if st.Hits != 1 || st.Misses != 1 || st.Size != 1 {
		t.Errorf("Stats() = %+v, want 1 hit, 1 miss, size 1", st)
	}
	if backend.sets != 1 {
		t.Errorf("backend Set called %d times, want 1", backend.sets)
	}
}

func TestStrategy_WithTransform(t *testing.T) {
	s := New("fake", newFakeBackend(), WithTransform(strings.ToLower))

	if got := s.Upper("ABC"); got != "abc" {
		t.Errorf("Upper() = %q, want %q", got, "abc")
	}
	if got := s.Name(); got != "fake" {
		t.Errorf("Name() = %q, want %q", got, "fake")
	}
}

func TestStrategy_ReportsToCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := New("fake", newFakeBackend(), WithStats(promstats.New(reg)))

	s.Upper("a")
	s.Upper("a")
	s.Upper("b")

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	got := make(map[string]float64)
	for _, mf := range families {
		m := mf.GetMetric()[0]
		switch {
		case m.GetCounter() != nil:
			got[mf.GetName()] = m.GetCounter().GetValue()
		case m.GetGauge() != nil:
			got[mf.GetName()] = m.GetGauge().GetValue()
		}
	}

	want := map[string]float64{
		stats.MetricCacheHits:   1,
		stats.MetricCacheMisses: 2,
		stats.MetricCacheSize:   2,
	}
	for name, v := range want {
		if got[name] != v {
			t.Errorf("%s = %v, want %v", name, got[name], v)
		}
	}
}
