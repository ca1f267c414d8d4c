// Package workload provides the input strings the benchmark feeds to the
// memoization strategies: read from a file, or generated with a skewed key
// distribution for eviction studies.
package workload

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/yogurtpowered/lrucache/internal/codec"
)

// ErrEmpty indicates a workload source contained no inputs.
var ErrEmpty = errors.New("workload: no inputs")

// Read returns one input per non-blank line of r, with surrounding
// whitespace trimmed.
func Read(r io.Reader) ([]string, error) {
	var inputs []string

	scanner := bufio.NewScanner(r)
	// Increase buffer size for long lines.
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		inputs = append(inputs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning inputs: %w", err)
	}
	if len(inputs) == 0 {
		return nil, ErrEmpty
	}
	return inputs, nil
}

// Open reads inputs from path. Files ending in .zst or .gz are decompressed.
func Open(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening inputs file: %w", err)
	}
	defer file.Close()

	reader, err := codec.ForPath(path).Reader(file)
	if err != nil {
		return nil, fmt.Errorf("decompressing %s: %w", path, err)
	}
	defer reader.Close()

	inputs, err := Read(reader)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return inputs, nil
}

// Create writes inputs to path one per line, compressed according to the
// file extension.
func Create(path string, inputs []string) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating inputs file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	w, err := codec.ForPath(path).Writer(file)
	if err != nil {
		return fmt.Errorf("compressing %s: %w", path, err)
	}
	bw := bufio.NewWriter(w)
	for _, in := range inputs {
		bw.WriteString(in)
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return w.Close()
}

// Zipf returns n keys drawn from distinct mixed-case keys with a Zipf
// distribution (s=1.1), so a few keys dominate. The same seed always yields
// the same trace.
func Zipf(n, distinct int, seed uint64) []string {
	if n <= 0 || distinct <= 0 {
		return nil
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	zipf := rand.NewZipf(rng, 1.1, 1, uint64(distinct-1))

	keys := make([]string, distinct)
	for i := range keys {
		keys[i] = Key(i)
	}

	trace := make([]string, n)
	for i := range trace {
		trace[i] = keys[zipf.Uint64()]
	}
	return trace
}

// Key returns the i-th synthetic mixed-case key.
func Key(i int) string {
	return fmt.Sprintf("MixedCaseString-%d", i)
}
