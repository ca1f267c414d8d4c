package stats

import "slices"

// labeled adds fixed labels to everything reported through it.
type labeled struct {
	next   Collector
	labels []Label
}

// Compile-time check that labeled implements Collector.
var _ Collector = (*labeled)(nil)

// WithLabels returns a Collector reporting to c with labels attached to
// every metric, ahead of any labels passed per call.
func WithLabels(c Collector, labels ...Label) Collector {
	if len(labels) == 0 {
		return c
	}
	return &labeled{next: c, labels: slices.Clip(slices.Clone(labels))}
}

func (l *labeled) IncCounter(name string, delta int64, labels ...Label) {
	l.next.IncCounter(name, delta, l.with(labels)...)
}

func (l *labeled) SetGauge(name string, value int64, labels ...Label) {
	l.next.SetGauge(name, value, l.with(labels)...)
}

func (l *labeled) ObserveHistogram(name string, value float64, labels ...Label) {
	l.next.ObserveHistogram(name, value, l.with(labels)...)
}

func (l *labeled) with(extra []Label) []Label {
	if len(extra) == 0 {
		return l.labels
	}
	return append(l.labels, extra...)
}
