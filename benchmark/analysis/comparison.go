package analysis

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yogurtpowered/lrucache/benchmark/runner"
)

// Options tunes the bootstrap used by comparisons.
type Options struct {
	BootstrapIterations int
	Confidence          float64
	Seed                uint64
}

// DefaultOptions returns 10,000 resamples at 95% confidence.
func DefaultOptions() Options {
	return Options{
		BootstrapIterations: 10_000,
		Confidence:          0.95,
		Seed:                1,
	}
}

// Comparison is a statistical comparison of two strategies' throughput.
type Comparison struct {
	Baseline    string
	Candidate   string
	BaseStats   *Summary
	CandStats   *Summary
	RankTest    *RankTest
	EffectSize  *EffectSize
	Interval    *Interval // Candidate minus baseline, in ops/s.
	Speedup     float64   // Candidate mean over baseline mean.
	Winner      string    // Higher mean throughput, or "tie".
	Significant bool
}

// CompareStrategies compares candidate against baseline. Higher throughput
// wins.
func CompareStrategies(baseline, candidate *runner.Result, opts Options) *Comparison {
	base, cand := baseline.Samples, candidate.Samples

	c := &Comparison{
		Baseline:   baseline.Strategy,
		Candidate:  candidate.Strategy,
		BaseStats:  Describe(base),
		CandStats:  Describe(cand),
		RankTest:   MannWhitneyU(cand, base),
		EffectSize: ComputeEffectSize(cand, base),
		Interval:   BootstrapConfidenceInterval(cand, base, opts.BootstrapIterations, opts.Confidence, opts.Seed),
	}
	if c.BaseStats.Mean > 0 {
		c.Speedup = c.CandStats.Mean / c.BaseStats.Mean
	}

	switch {
	case c.CandStats.Mean > c.BaseStats.Mean:
		c.Winner = candidate.Strategy
	case c.BaseStats.Mean > c.CandStats.Mean:
		c.Winner = baseline.Strategy
	default:
		c.Winner = "tie"
	}
	c.Significant = c.Winner != "tie" && c.RankTest.Significant

	return c
}

// Summary returns a short human-readable description of the comparison.
func (c *Comparison) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s vs %s:\n", c.Candidate, c.Baseline)
	fmt.Fprintf(&b, "  %s: mean=%s, median=%s, cv=%.1f%%\n",
		c.Candidate, FormatOps(c.CandStats.Mean), FormatOps(c.CandStats.Median), c.CandStats.CV())
	fmt.Fprintf(&b, "  %s: mean=%s, median=%s, cv=%.1f%%\n",
		c.Baseline, FormatOps(c.BaseStats.Mean), FormatOps(c.BaseStats.Median), c.BaseStats.CV())
	fmt.Fprintf(&b, "  Speedup: %.2fx, effect size %.2f (%s)\n",
		c.Speedup, c.EffectSize.CohensD, c.EffectSize.Interpretation)

	verdict := "not significant"
	if c.Significant {
		verdict = fmt.Sprintf("significant (p=%.4f)", c.RankTest.PValue)
	}
	fmt.Fprintf(&b, "  Result: %s, %s", c.Winner, verdict)
	return b.String()
}

// CompareAll compares every result against the named baseline, in input
// order. It returns nil if the baseline is absent.
func CompareAll(results []*runner.Result, baseline string, opts Options) []*Comparison {
	i := slices.IndexFunc(results, func(r *runner.Result) bool { return r.Strategy == baseline })
	if i < 0 {
		return nil
	}
	base := results[i]

	var comps []*Comparison
	for _, r := range results {
		if r.Strategy == baseline {
			continue
		}
		comps = append(comps, CompareStrategies(base, r, opts))
	}
	return comps
}

// FormatOps renders an ops/s figure with a metric suffix.
func FormatOps(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.2fG ops/s", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.2fM ops/s", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.2fK ops/s", v/1e3)
	default:
		return fmt.Sprintf("%.0f ops/s", v)
	}
}
