package reporting

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/yogurtpowered/lrucache/benchmark/analysis"
	"github.com/yogurtpowered/lrucache/benchmark/runner"
	"github.com/yogurtpowered/lrucache/benchmark/simulation"
	"github.com/yogurtpowered/lrucache/internal/memo"
)

func sampleResults() []*runner.Result {
	return []*runner.Result{
		{Strategy: "simple", Samples: []float64{1e6, 1.1e6, 0.9e6}},
		{
			Strategy: "lrucache",
			Samples:  []float64{2e6, 2.1e6, 1.9e6},
			Cache:    &memo.Stats{Hits: 99, Misses: 1, Size: 1},
		},
	}
}

func writeAll(t *testing.T, format string) string {
	t.Helper()
	var buf bytes.Buffer
	r, err := New(&buf, format)
	if err != nil {
		t.Fatalf("New(%q) error = %v", format, err)
	}

	results := sampleResults()
	cfg := runner.DefaultConfig()
	r.WriteHeader("Uppercase throughput", cfg)
	r.WriteSummary(results, "simple")
	for _, c := range analysis.CompareAll(results, "simple", analysis.DefaultOptions()) {
		r.WriteComparison(c)
	}
	r.WriteSimulation(2, map[string]*simulation.Result{
		"lrucache": {Lookups: 4, Hits: 1, Misses: 3, KeyHits: map[string]int{"a": 2, "b": 1, "c": 1}},
	})
	r.WriteFooter()
	return buf.String()
}

func TestMarkdownReport(t *testing.T) {
	out := writeAll(t, FormatMarkdown)

	for _, want := range []string{
		"# Uppercase throughput",
		"| lrucache | 2.00M ops/s",
		"| 2.00x | 99.0% | 1 |",
		"## lrucache vs simple",
		"## Simulation (capacity 2)",
		"| lrucache | 4 | 25.00% |",
		"*Report generated by upperbench*",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown report missing %q:\n%s", want, out)
		}
	}
}

func TestTextReport(t *testing.T) {
	out := writeAll(t, FormatText)

	for _, want := range []string{"STRATEGY", "simple", "1.00x", "99.0%", "lrucache vs simple"} {
		if !strings.Contains(out, want) {
			t.Errorf("text report missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "|") {
		t.Errorf("text report contains Markdown table syntax:\n%s", out)
	}
}

func TestNew_UnknownFormat(t *testing.T) {
	if _, err := New(&bytes.Buffer{}, "html"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("New(html) error = %v, want ErrUnknownFormat", err)
	}
}

func TestRelative_MissingBaseline(t *testing.T) {
	r := &runner.Result{Strategy: "x", Samples: []float64{1}, Elapsed: time.Second}
	if got := relative(r, []*runner.Result{r}, "absent"); got != 0 {
		t.Errorf("relative() = %v, want 0", got)
	}
}

func TestWriteMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "upperbench_ops_total", Help: "ops"})
	reg.MustRegister(c)
	c.Add(3)

	var buf bytes.Buffer
	if err := WriteMetrics(&buf, reg); err != nil {
		t.Fatalf("WriteMetrics() error = %v", err)
	}
	if out := buf.String(); !strings.Contains(out, "upperbench_ops_total 3") {
		t.Errorf("WriteMetrics() output = %q, want counter sample", out)
	}
}
