package workload

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func TestRead(t *testing.T) {
	got, err := Read(strings.NewReader("alpha\n\n  Bravo  \r\ncharlie"))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	want := []string{"alpha", "Bravo", "charlie"}
	if !slices.Equal(got, want) {
		t.Errorf("Read() = %v, want %v", got, want)
	}
}

func TestRead_Empty(t *testing.T) {
	if _, err := Read(strings.NewReader("\n \n")); !errors.Is(err, ErrEmpty) {
		t.Errorf("Read() error = %v, want ErrEmpty", err)
	}
}

func TestOpen_Plain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inputs.txt")
	if err := os.WriteFile(path, []byte("one\ntwo\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if !slices.Equal(got, []string{"one", "two"}) {
		t.Errorf("Open() = %v, want [one two]", got)
	}
}

func TestOpen_Zstd(t *testing.T) {
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	if err != nil {
		t.Fatalf("zstd.NewWriter() error = %v", err)
	}
	if _, err := enc.Write([]byte("MixedCaseString\nanotherOne\n")); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "inputs.txt.zst")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if !slices.Equal(got, []string{"MixedCaseString", "anotherOne"}) {
		t.Errorf("Open() = %v", got)
	}
}

func TestCreate_RoundTrip(t *testing.T) {
	want := Zipf(500, 50, 4)
	for _, name := range []string{"trace.txt", "trace.txt.gz", "trace.txt.zst"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := Create(path, want); err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			got, err := Open(path)
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			if !slices.Equal(got, want) {
				t.Errorf("Open() returned %d inputs, want %d identical to those written", len(got), len(want))
			}
		})
	}
}

func TestOpen_Missing(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "nope")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Open() error = %v, want os.ErrNotExist", err)
	}
}

func TestZipf(t *testing.T) {
	a := Zipf(10_000, 100, 7)
	b := Zipf(10_000, 100, 7)
	if !slices.Equal(a, b) {
		t.Error("Zipf() with the same seed should be deterministic")
	}
	if len(a) != 10_000 {
		t.Fatalf("len(Zipf()) = %d, want 10000", len(a))
	}

	counts := make(map[string]int)
	for _, k := range a {
		counts[k]++
	}
	if len(counts) > 100 {
		t.Errorf("Zipf() produced %d distinct keys, want <= 100", len(counts))
	}
	if counts[Key(0)] < counts[Key(50)] {
		t.Errorf("key 0 drawn %d times, key 50 %d times; want skew toward low keys",
			counts[Key(0)], counts[Key(50)])
	}

	if Zipf(0, 10, 1) != nil || Zipf(10, 0, 1) != nil {
		t.Error("Zipf() with non-positive sizes should return nil")
	}
}
