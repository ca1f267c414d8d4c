package golanglru

import (
	"errors"
	"testing"
	"time"
	"unsafe"
)

func TestBackend_GetSet(t *testing.T) {
	b, err := New(10, time.Hour)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, ok := b.Get("k"); ok {
		t.Error("Get() should return false for missing key")
	}
	b.Set("k", "K")
	if v, ok := b.Get("k"); !ok || v != "K" {
		t.Errorf("Get() = %q, %v; want %q, true", v, ok, "K")
	}
}

func TestBackend_Eviction(t *testing.T) {
	b, err := New(2, time.Hour)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	b.Set("1", "one")
	b.Set("2", "two")
	b.Set("3", "three")

	if _, ok := b.Get("1"); ok {
		t.Error("Get(1) should return false after eviction")
	}
	if b.Len() != 2 {
		t.Errorf("Len() = %d, want 2", b.Len())
	}
}

func TestBackend_Expiry(t *testing.T) {
	b, err := New(10, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	b.Set("k", "K")
	time.Sleep(60 * time.Millisecond)

	if _, ok := b.Get("k"); ok {
		t.Error("Get() should miss after ttl elapsed")
	}
}

func TestBackend_InternsValues(t *testing.T) {
	b, err := New(10, 0)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// Build equal strings with distinct backing arrays.
	v1 := string([]byte("UPPER"))
	v2 := string([]byte("UPPER"))
	b.Set("a", v1)
	b.Set("b", v2)

	a, _ := b.Get("a")
	c, _ := b.Get("b")
	if unsafe.StringData(a) != unsafe.StringData(c) {
		t.Error("equal values should share interned storage")
	}
}

func TestNew_InvalidCapacity(t *testing.T) {
	for _, capacity := range []int{0, -5} {
		if _, err := New(capacity, time.Hour); !errors.Is(err, ErrInvalidCapacity) {
			t.Errorf("New(%d) error = %v, want ErrInvalidCapacity", capacity, err)
		}
	}
}
