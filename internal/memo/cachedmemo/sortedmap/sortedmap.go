// Package sortedmap implements an unbounded cache backend on an ordered
// B-tree whose keys compare case-insensitively.
package sortedmap

import (
	"sync"

	"github.com/google/btree"
	"golang.org/x/text/cases"

	"github.com/yogurtpowered/lrucache/internal/memo/cachedmemo"
)

// degree is the B-tree branching factor.
const degree = 32

// Compile-time check that Backend implements cachedmemo.Backend.
var _ cachedmemo.Backend = (*Backend)(nil)

type item struct {
	folded string
	value  string
}

func less(a, b item) bool {
	return a.folded < b.folded
}

var folders = sync.Pool{
	New: func() any {
		c := cases.Fold()
		return &c
	},
}

// Fold returns the case-folded form of s. Keys equal under Fold are treated
// as the same key.
func Fold(s string) string {
	c := folders.Get().(*cases.Caser)
	out := c.String(s)
	folders.Put(c)
	return out
}

// Backend is a case-insensitive sorted map.
type Backend struct {
	mu   sync.RWMutex
	tree *btree.BTreeG[item]
}

// New creates an empty sorted map backend.
func New() *Backend {
	return &Backend{tree: btree.NewG(degree, less)}
}

// Get retrieves the value stored under any key equal to key ignoring case.
func (b *Backend) Get(key string) (string, bool) {
	probe := item{folded: Fold(key)}

	b.mu.RLock()
	it, ok := b.tree.Get(probe)
	b.mu.RUnlock()
	return it.value, ok
}

// Set stores value under key, replacing any entry equal ignoring case.
func (b *Backend) Set(key, value string) {
	it := item{folded: Fold(key), value: value}

	b.mu.Lock()
	b.tree.ReplaceOrInsert(it)
	b.mu.Unlock()
}

// Len returns the number of entries.
func (b *Backend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tree.Len()
}

// Keys returns the folded keys in ascending order.
func (b *Backend) Keys() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	keys := make([]string, 0, b.tree.Len())
	b.tree.Ascend(func(it item) bool {
		keys = append(keys, it.folded)
		return true
	})
	return keys
}
