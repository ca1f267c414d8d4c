// Package prometheus provides a Prometheus-based stats collector.
package prometheus

import (
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/yogurtpowered/lrucache/internal/stats"
)

// DefaultBuckets spans one to roughly a billion in powers of four, which
// covers both per-iteration throughput and cache sizes.
var DefaultBuckets = prometheus.ExponentialBuckets(1, 4, 16)

// Collector implements stats.Collector using Prometheus metrics.
// Metrics are created and registered lazily on first use, with the label
// names of that first use. Later observations whose label names differ are
// dropped.
type Collector struct {
	registry prometheus.Registerer
	buckets  []float64

	mu         sync.RWMutex
	counters   map[string]*prometheus.CounterVec
	gauges     map[string]*prometheus.GaugeVec
	histograms map[string]*prometheus.HistogramVec
}

// Compile-time check that Collector implements stats.Collector.
var _ stats.Collector = (*Collector)(nil)

// New creates a new Prometheus collector.
// If registry is nil, prometheus.DefaultRegisterer is used.
// If buckets is empty, DefaultBuckets is used for histograms.
func New(registry prometheus.Registerer, buckets ...float64) *Collector {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	if len(buckets) == 0 {
		buckets = DefaultBuckets
	}
	return &Collector{
		registry:   registry,
		buckets:    buckets,
		counters:   make(map[string]*prometheus.CounterVec),
		gauges:     make(map[string]*prometheus.GaugeVec),
		histograms: make(map[string]*prometheus.HistogramVec),
	}
}

// IncCounter increments a counter metric.
func (c *Collector) IncCounter(name string, delta int64, labels ...stats.Label) {
	vec := getOrCreate(c, c.counters, name, labels, func(names []string) *prometheus.CounterVec {
		return prometheus.NewCounterVec(prometheus.CounterOpts{Name: name, Help: name}, names)
	})
	if counter, err := vec.GetMetricWith(labelMap(labels)); err == nil {
		counter.Add(float64(delta))
	}
}

// SetGauge sets a gauge metric.
func (c *Collector) SetGauge(name string, value int64, labels ...stats.Label) {
	vec := getOrCreate(c, c.gauges, name, labels, func(names []string) *prometheus.GaugeVec {
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: name, Help: name}, names)
	})
	if gauge, err := vec.GetMetricWith(labelMap(labels)); err == nil {
		gauge.Set(float64(value))
	}
}

// ObserveHistogram records a value in a histogram.
func (c *Collector) ObserveHistogram(name string, value float64, labels ...stats.Label) {
	vec := getOrCreate(c, c.histograms, name, labels, func(names []string) *prometheus.HistogramVec {
		return prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    name,
			Help:    name,
			Buckets: c.buckets,
		}, names)
	})
	if histogram, err := vec.GetMetricWith(labelMap(labels)); err == nil {
		histogram.Observe(value)
	}
}

func labelMap(labels []stats.Label) prometheus.Labels {
	m := make(prometheus.Labels, len(labels))
	for _, l := range labels {
		m[l.Name] = l.Value
	}
	return m
}

// getOrCreate returns the metric vector cached under name, creating and
// registering it with the label names of labels if needed. A vector already
// registered elsewhere under the same name is adopted instead of the new one.
func getOrCreate[M prometheus.Collector](c *Collector, metrics map[string]M, name string, labels []stats.Label, create func(labelNames []string) M) M {
	c.mu.RLock()
	m, ok := metrics[name]
	c.mu.RUnlock()
	if ok {
		return m
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock.
	if m, ok = metrics[name]; ok {
		return m
	}

	names := make([]string, len(labels))
	for i, l := range labels {
		names[i] = l.Name
	}
	m = create(names)
	if err := c.registry.Register(m); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(M); ok {
				m = existing
			}
		}
		// Otherwise keep the unregistered metric; it still records values.
	}
	metrics[name] = m
	return m
}
