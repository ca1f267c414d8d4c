package simulation

import (
	"sort"
)

// Metrics contains computed metrics from a simulation result.
type Metrics struct {
	// Core metrics.
	Lookups      int
	HitRate      float64
	EvictionRate float64 // Evictions per lookup, as a percentage.
	UniqueKeys   int

	// Locality metrics.
	KeyConcentration float64 // Gini coefficient of key frequency.
	TopKeyPct        float64 // Percentage of lookups on the top 10% of keys.
}

// ComputeMetrics computes detailed metrics from a result.
func ComputeMetrics(result *Result) *Metrics {
	m := &Metrics{
		Lookups:    result.Lookups,
		HitRate:    result.HitRate(),
		UniqueKeys: len(result.KeyHits),
	}
	if result.Lookups > 0 {
		m.EvictionRate = float64(result.Evictions) / float64(result.Lookups) * 100
	}

	if len(result.KeyHits) > 0 {
		counts := make([]int, 0, len(result.KeyHits))
		for _, c := range result.KeyHits {
			counts = append(counts, c)
		}
		sort.Ints(counts)
		m.KeyConcentration = computeGini(counts)
		m.TopKeyPct = computeTopPct(counts, result.Lookups, 0.1)
	}

	return m
}

// computeGini returns the Gini coefficient of ascending counts.
func computeGini(sorted []int) float64 {
	n := float64(len(sorted))
	var sum, cumulativeSum float64
	for i, v := range sorted {
		sum += float64(v)
		cumulativeSum += float64(i+1) * float64(v)
	}

	if sum == 0 {
		return 0
	}

	// Gini coefficient formula.
	return (2*cumulativeSum)/(n*sum) - (n+1)/n
}

// computeTopPct returns the share of total held by the largest topFraction
// of ascending counts, as a percentage.
func computeTopPct(sorted []int, total int, topFraction float64) float64 {
	if total == 0 || len(sorted) == 0 {
		return 0
	}

	topCount := int(float64(len(sorted)) * topFraction)
	if topCount == 0 {
		topCount = 1
	}

	var top int
	for _, v := range sorted[len(sorted)-topCount:] {
		top += v
	}
	return float64(top) / float64(total) * 100
}
