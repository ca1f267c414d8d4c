package stats

// Noop is a no-op collector that discards all metrics.
// It is the default wherever a collector is optional.
type Noop struct{}

// Compile-time check that Noop implements Collector.
var _ Collector = (*Noop)(nil)

// NewNoop creates a new no-op collector.
func NewNoop() *Noop {
	return &Noop{}
}

func (n *Noop) IncCounter(string, int64, ...Label)         {}
func (n *Noop) SetGauge(string, int64, ...Label)           {}
func (n *Noop) ObserveHistogram(string, float64, ...Label) {}
