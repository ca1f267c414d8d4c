// Package memo defines the strategies the benchmark compares for producing
// the uppercase form of a string, with or without memoization.
package memo

// Strategy produces the uppercase form of a string.
// Implementations must be safe for concurrent use.
type Strategy interface {
	// Name returns the identifier used on the command line and in reports.
	Name() string

	// Upper returns the uppercase form of s.
	Upper(s string) string
}

// Transform computes a value on a cache miss.
type Transform func(s string) string

// Stats contains cache statistics for a memoizing strategy.
type Stats struct {
	Hits   int64
	Misses int64
	Size   int // Current number of entries
}

// HitRate returns the cache hit rate as a percentage.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// Reporter is implemented by strategies that keep cache statistics.
type Reporter interface {
	Stats() Stats
}
