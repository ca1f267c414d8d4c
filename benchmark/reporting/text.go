package reporting

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/yogurtpowered/lrucache/benchmark/analysis"
	"github.com/yogurtpowered/lrucache/benchmark/runner"
	"github.com/yogurtpowered/lrucache/benchmark/simulation"
)

// TextReport writes a report as aligned plain-text tables.
type TextReport struct {
	w io.Writer
}

var _ Report = (*TextReport)(nil)

// NewTextReport creates a plain-text report writer.
func NewTextReport(w io.Writer) *TextReport {
	return &TextReport{w: w}
}

// WriteHeader writes the title and run parameters.
func (r *TextReport) WriteHeader(title string, cfg runner.Config) {
	fmt.Fprintln(r.w, title)
	fmt.Fprintf(r.w, "warmup=%d iterations=%d time=%s threads=%d inputs=%d\n\n",
		cfg.WarmupIterations, cfg.Iterations, cfg.IterationTime, cfg.Threads, len(cfg.Inputs))
}

// WriteSummary writes one line per strategy.
func (r *TextReport) WriteSummary(results []*runner.Result, baseline string) {
	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "STRATEGY\tMEAN\tMEDIAN\tCV\tVS %s\tHIT RATE\tSIZE\n", baseline)
	for _, res := range results {
		s := analysis.Describe(res.Samples)
		hit, size := cacheColumns(res)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f%%\t%.2fx\t%s\t%s\n",
			res.Strategy, analysis.FormatOps(s.Mean), analysis.FormatOps(s.Median),
			s.CV(), relative(res, results, baseline), hit, size)
	}
	tw.Flush()
	fmt.Fprintln(r.w)
}

// WriteComparison writes the comparison summary.
func (r *TextReport) WriteComparison(c *analysis.Comparison) {
	fmt.Fprintln(r.w, c.Summary())
	fmt.Fprintln(r.w)
}

// WriteSimulation writes the hit rates of a trace replay.
func (r *TextReport) WriteSimulation(capacity int, results map[string]*simulation.Result) {
	fmt.Fprintf(r.w, "simulation, capacity %d\n", capacity)
	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "POLICY\tLOOKUPS\tHIT RATE\tEVICTIONS\tUNIQUE KEYS\tGINI")
	for _, name := range sortedNames(results) {
		res := results[name]
		m := simulation.ComputeMetrics(res)
		fmt.Fprintf(tw, "%s\t%d\t%.2f%%\t%d\t%d\t%.3f\n",
			name, m.Lookups, m.HitRate, res.Evictions, m.UniqueKeys, m.KeyConcentration)
	}
	tw.Flush()
	fmt.Fprintln(r.w)
}

// WriteFooter is a no-op for text reports.
func (r *TextReport) WriteFooter() {}
