package reporting

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/yogurtpowered/lrucache/benchmark/analysis"
	"github.com/yogurtpowered/lrucache/benchmark/runner"
	"github.com/yogurtpowered/lrucache/benchmark/simulation"
)

// MarkdownReport writes a report as GitHub-flavored Markdown.
type MarkdownReport struct {
	w io.Writer
}

var _ Report = (*MarkdownReport)(nil)

// NewMarkdownReport creates a Markdown report writer.
func NewMarkdownReport(w io.Writer) *MarkdownReport {
	return &MarkdownReport{w: w}
}

// WriteHeader writes the title and the methodology section.
func (r *MarkdownReport) WriteHeader(title string, cfg runner.Config) {
	fmt.Fprintf(r.w, "# %s\n\n", title)
	fmt.Fprintln(r.w, "## Methodology")
	fmt.Fprintln(r.w)
	fmt.Fprintf(r.w, "- **Warmup:** %d iterations\n", cfg.WarmupIterations)
	fmt.Fprintf(r.w, "- **Measurement:** %d iterations of %s\n", cfg.Iterations, cfg.IterationTime)
	fmt.Fprintf(r.w, "- **Threads:** %d\n", cfg.Threads)
	fmt.Fprintf(r.w, "- **Inputs:** %d distinct\n", len(cfg.Inputs))
	fmt.Fprintln(r.w, "- **Metric:** throughput in ops/s (higher is better)")
	fmt.Fprintln(r.w)
}

// WriteSummary writes one table row per strategy.
func (r *MarkdownReport) WriteSummary(results []*runner.Result, baseline string) {
	fmt.Fprintln(r.w, "## Summary")
	fmt.Fprintln(r.w)
	fmt.Fprintf(r.w, "| Strategy | Mean | Median | CV | vs %s | Hit Rate | Size |\n", baseline)
	fmt.Fprintln(r.w, "|----------|------|--------|----|-------|----------|------|")

	for _, res := range results {
		s := analysis.Describe(res.Samples)
		hit, size := cacheColumns(res)
		fmt.Fprintf(r.w, "| %s | %s | %s | %.1f%% | %.2fx | %s | %s |\n",
			res.Strategy, analysis.FormatOps(s.Mean), analysis.FormatOps(s.Median),
			s.CV(), relative(res, results, baseline), hit, size)
	}
	fmt.Fprintln(r.w)
}

// WriteComparison writes a detailed comparison section.
func (r *MarkdownReport) WriteComparison(c *analysis.Comparison) {
	fmt.Fprintf(r.w, "## %s vs %s\n\n", c.Candidate, c.Baseline)

	fmt.Fprintf(r.w, "| Metric | %s | %s |\n", c.Candidate, c.Baseline)
	fmt.Fprintf(r.w, "|--------|%s|%s|\n",
		strings.Repeat("-", len(c.Candidate)+2), strings.Repeat("-", len(c.Baseline)+2))
	rows := []struct {
		label      string
		cand, base float64
	}{
		{"Mean", c.CandStats.Mean, c.BaseStats.Mean},
		{"Median", c.CandStats.Median, c.BaseStats.Median},
		{"Std Dev", c.CandStats.StdDev, c.BaseStats.StdDev},
		{"Min", c.CandStats.Min, c.BaseStats.Min},
		{"Max", c.CandStats.Max, c.BaseStats.Max},
	}
	for _, row := range rows {
		fmt.Fprintf(r.w, "| %s | %.0f | %.0f |\n", row.label, row.cand, row.base)
	}
	fmt.Fprintln(r.w)

	fmt.Fprintf(r.w, "- **Mann-Whitney U:** %.2f (z=%.2f, p=%.4f)\n",
		c.RankTest.U, c.RankTest.Z, c.RankTest.PValue)
	fmt.Fprintf(r.w, "- **Effect size (Cohen's d):** %.2f (%s)\n",
		c.EffectSize.CohensD, c.EffectSize.Interpretation)
	fmt.Fprintf(r.w, "- **%.0f%% CI for mean difference:** [%.0f, %.0f] ops/s\n",
		c.Interval.Confidence*100, c.Interval.Lower, c.Interval.Upper)
	fmt.Fprintln(r.w)

	if c.Significant {
		fmt.Fprintf(r.w, "**%s** is significantly faster (%.2fx, effect size: %s).\n",
			c.Winner, max(c.Speedup, safeInverse(c.Speedup)), c.EffectSize.Interpretation)
	} else {
		fmt.Fprintf(r.w, "No significant difference detected (p >= %.2f).\n", analysis.SignificanceLevel)
	}
	fmt.Fprintln(r.w)
}

// WriteSimulation writes the hit rates of a trace replay.
func (r *MarkdownReport) WriteSimulation(capacity int, results map[string]*simulation.Result) {
	fmt.Fprintf(r.w, "## Simulation (capacity %d)\n\n", capacity)
	fmt.Fprintln(r.w, "| Policy | Lookups | Hit Rate | Evictions | Unique Keys | Top 10% Keys |")
	fmt.Fprintln(r.w, "|--------|---------|----------|-----------|-------------|--------------|")

	for _, name := range sortedNames(results) {
		res := results[name]
		m := simulation.ComputeMetrics(res)
		fmt.Fprintf(r.w, "| %s | %d | %.2f%% | %d | %d | %.1f%% |\n",
			name, m.Lookups, m.HitRate, res.Evictions, m.UniqueKeys, m.TopKeyPct)
	}
	fmt.Fprintln(r.w)
}

// WriteFooter writes the report footer.
func (r *MarkdownReport) WriteFooter() {
	fmt.Fprintln(r.w, "---")
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, "*Report generated by upperbench*")
}

func sortedNames(results map[string]*simulation.Result) []string {
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func safeInverse(v float64) float64 {
	if v == 0 {
		return 0
	}
	return 1 / v
}
