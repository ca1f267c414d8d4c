// Package stats provides a unified interface for collecting metrics.
package stats

// Metric names used by the memoization strategies and the benchmark runner.
const (
	// Memoization metrics, labeled by strategy.
	MetricCacheHits   = "upperbench_cache_hits_total"
	MetricCacheMisses = "upperbench_cache_misses_total"
	MetricCacheSize   = "upperbench_cache_size"
	MetricCacheLoads  = "upperbench_cache_loads_total"

	// Runner metrics.
	MetricBenchOps            = "upperbench_ops_total"
	MetricIterationThroughput = "upperbench_iteration_ops_per_second"
)

// LabelStrategy names the strategy a metric was recorded for.
const LabelStrategy = "strategy"

// Label is a metric dimension.
type Label struct {
	Name  string
	Value string
}

// Collector defines the interface for collecting metrics.
// Implementations must be safe for concurrent use. A metric name must be
// reported with the same label names every time.
type Collector interface {
	// IncCounter increments a counter metric by delta.
	IncCounter(name string, delta int64, labels ...Label)

	// SetGauge sets a gauge metric to value.
	SetGauge(name string, value int64, labels ...Label)

	// ObserveHistogram records a value in a histogram metric.
	ObserveHistogram(name string, value float64, labels ...Label)
}
