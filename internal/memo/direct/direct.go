// Package direct implements the strategies that compute the uppercase form on
// every call, without caching.
package direct

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/yogurtpowered/lrucache/internal/memo"
)

// Compile-time checks that the strategies implement memo.Strategy.
var (
	_ memo.Strategy = (*Baseline)(nil)
	_ memo.Strategy = (*Simple)(nil)
	_ memo.Strategy = (*TextCases)(nil)
)

// casers pools upper casers; a cases.Caser keeps state and must not be
// shared between goroutines.
var casers = sync.Pool{
	New: func() any {
		c := cases.Upper(language.Und)
		return &c
	},
}

// Upper returns the Unicode uppercase form of s using golang.org/x/text.
// It is the transform the caching strategies run on a miss.
func Upper(s string) string {
	c := casers.Get().(*cases.Caser)
	out := c.String(s)
	casers.Put(c)
	return out
}

// Baseline does no work and returns its input. It measures the cost of the
// harness itself.
type Baseline struct{}

// NewBaseline creates the no-op baseline strategy.
func NewBaseline() *Baseline { return &Baseline{} }

// Name returns "baseline-noop".
func (b *Baseline) Name() string { return "baseline-noop" }

// Upper returns s unchanged.
func (b *Baseline) Upper(s string) string { return s }

// Simple uppercases with the standard library on every call.
type Simple struct{}

// NewSimple creates the strings.ToUpper strategy.
func NewSimple() *Simple { return &Simple{} }

// Name returns "simple".
func (s *Simple) Name() string { return "simple" }

// Upper returns strings.ToUpper(v).
func (s *Simple) Upper(v string) string { return strings.ToUpper(v) }

// TextCases uppercases with golang.org/x/text/cases on every call.
type TextCases struct{}

// NewTextCases creates the x/text strategy.
func NewTextCases() *TextCases { return &TextCases{} }

// Name returns "textcases".
func (t *TextCases) Name() string { return "textcases" }

// Upper returns the x/text uppercase form of s.
func (t *TextCases) Upper(s string) string { return Upper(s) }
