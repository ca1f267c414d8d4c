// Package reporting renders benchmark results as text or Markdown.
package reporting

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/yogurtpowered/lrucache/benchmark/analysis"
	"github.com/yogurtpowered/lrucache/benchmark/runner"
	"github.com/yogurtpowered/lrucache/benchmark/simulation"
)

// ErrUnknownFormat is returned by New for an unsupported format name.
var ErrUnknownFormat = errors.New("reporting: unknown format")

// Format names accepted by New.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
)

// Report writes the sections of a benchmark report.
type Report interface {
	WriteHeader(title string, cfg runner.Config)
	WriteSummary(results []*runner.Result, baseline string)
	WriteComparison(c *analysis.Comparison)
	WriteSimulation(capacity int, results map[string]*simulation.Result)
	WriteFooter()
}

// New returns a report of the named format writing to w.
func New(w io.Writer, format string) (Report, error) {
	switch strings.ToLower(format) {
	case FormatText, "":
		return NewTextReport(w), nil
	case FormatMarkdown, "md":
		return NewMarkdownReport(w), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// relative returns mean throughput of r relative to the baseline, or 0 if the
// baseline is missing.
func relative(r *runner.Result, results []*runner.Result, baseline string) float64 {
	for _, b := range results {
		if b.Strategy != baseline {
			continue
		}
		base := analysis.Describe(b.Samples).Mean
		if base == 0 {
			return 0
		}
		return analysis.Describe(r.Samples).Mean / base
	}
	return 0
}

func cacheColumns(r *runner.Result) (hitRate, size string) {
	if r.Cache == nil {
		return "-", "-"
	}
	return fmt.Sprintf("%.1f%%", r.Cache.HitRate()), fmt.Sprintf("%d", r.Cache.Size)
}
