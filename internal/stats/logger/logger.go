// Package logger provides a zap-based stats collector that logs metrics.
package logger

import (
	"go.uber.org/zap"

	"github.com/yogurtpowered/lrucache/internal/stats"
)

// Collector implements stats.Collector by logging metrics via zap at debug
// level. Nothing is formatted unless debug logging is enabled.
type Collector struct {
	logger *zap.Logger
}

// Compile-time check that Collector implements stats.Collector.
var _ stats.Collector = (*Collector)(nil)

// New creates a new logger-based collector.
// If logger is nil, a no-op logger is used.
func New(logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{logger: logger}
}

// IncCounter logs a counter increment.
func (c *Collector) IncCounter(name string, delta int64, labels ...stats.Label) {
	if ce := c.logger.Check(zap.DebugLevel, "counter"); ce != nil {
		ce.Write(fields(name, zap.Int64("delta", delta), labels)...)
	}
}

// SetGauge logs a gauge value.
func (c *Collector) SetGauge(name string, value int64, labels ...stats.Label) {
	if ce := c.logger.Check(zap.DebugLevel, "gauge"); ce != nil {
		ce.Write(fields(name, zap.Int64("value", value), labels)...)
	}
}

// ObserveHistogram logs a histogram observation.
func (c *Collector) ObserveHistogram(name string, value float64, labels ...stats.Label) {
	if ce := c.logger.Check(zap.DebugLevel, "histogram"); ce != nil {
		ce.Write(fields(name, zap.Float64("value", value), labels)...)
	}
}

// fields renders a metric as zap fields, one per label.
func fields(name string, value zap.Field, labels []stats.Label) []zap.Field {
	fs := make([]zap.Field, 0, 2+len(labels))
	fs = append(fs, zap.String("metric", name), value)
	for _, l := range labels {
		fs = append(fs, zap.String(l.Name, l.Value))
	}
	return fs
}
