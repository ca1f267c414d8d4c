// Package analysis compares throughput samples from benchmark runs.
package analysis

import (
	"math"
	"math/rand/v2"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// SignificanceLevel is the p-value below which a difference counts.
const SignificanceLevel = 0.05

// Summary holds descriptive statistics of one sample.
type Summary struct {
	N      int
	Mean   float64
	Median float64
	StdDev float64
	Min    float64
	Max    float64
	P25    float64
	P75    float64
}

// CV returns the coefficient of variation as a percentage.
func (s *Summary) CV() float64 {
	if s.Mean == 0 {
		return 0
	}
	return s.StdDev / s.Mean * 100
}

// Describe summarizes a sample. An empty sample yields the zero Summary.
func Describe(sample []float64) *Summary {
	if len(sample) == 0 {
		return &Summary{}
	}

	sorted := slices.Clone(sample)
	slices.Sort(sorted)

	s := &Summary{
		N:      len(sorted),
		Mean:   stat.Mean(sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		P25:    stat.Quantile(0.25, stat.Empirical, sorted, nil),
		P75:    stat.Quantile(0.75, stat.Empirical, sorted, nil),
	}
	if len(sorted) > 1 {
		s.StdDev = stat.StdDev(sorted, nil)
	}
	return s
}

// RankTest is the outcome of a two-sided Mann-Whitney U test.
type RankTest struct {
	U           float64
	Z           float64 // Normal approximation.
	PValue      float64
	Significant bool
}

// MannWhitneyU tests whether a and b come from the same distribution
// without assuming normality. Ties receive their average rank.
func MannWhitneyU(a, b []float64) *RankTest {
	na, nb := float64(len(a)), float64(len(b))
	if na == 0 || nb == 0 {
		return &RankTest{PValue: 1}
	}

	ranks := rank(a, b)
	var ra float64
	for _, r := range ranks[:len(a)] {
		ra += r
	}

	ua := ra - na*(na+1)/2
	u := math.Min(ua, na*nb-ua)

	mu := na * nb / 2
	sigma := math.Sqrt(na * nb * (na + nb + 1) / 12)

	var z float64
	if sigma > 0 {
		z = (u - mu) / sigma
	}
	p := 2 * normalCDF(-math.Abs(z))

	return &RankTest{
		U:           u,
		Z:           z,
		PValue:      p,
		Significant: p < SignificanceLevel,
	}
}

// rank returns the average ranks of a followed by b in the pooled sample.
func rank(a, b []float64) []float64 {
	pooled := slices.Concat(a, b)
	order := make([]int, len(pooled))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(i, j int) int {
		switch {
		case pooled[i] < pooled[j]:
			return -1
		case pooled[i] > pooled[j]:
			return 1
		}
		return 0
	})

	ranks := make([]float64, len(pooled))
	for lo := 0; lo < len(order); {
		hi := lo
		for hi < len(order) && pooled[order[hi]] == pooled[order[lo]] {
			hi++
		}
		avg := float64(lo+hi+1) / 2
		for _, idx := range order[lo:hi] {
			ranks[idx] = avg
		}
		lo = hi
	}
	return ranks
}

func normalCDF(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}

// EffectSize is Cohen's d with a conventional label.
type EffectSize struct {
	CohensD        float64
	Interpretation string // negligible, small, medium, large or undefined.
}

// ComputeEffectSize computes Cohen's d of a relative to b.
func ComputeEffectSize(a, b []float64) *EffectSize {
	if len(a) < 2 || len(b) < 2 {
		return &EffectSize{Interpretation: "undefined"}
	}

	_, va := stat.MeanVariance(a, nil)
	_, vb := stat.MeanVariance(b, nil)
	na, nb := float64(len(a)), float64(len(b))
	pooled := math.Sqrt(((na-1)*va + (nb-1)*vb) / (na + nb - 2))

	var d float64
	if pooled > 0 {
		d = (stat.Mean(a, nil) - stat.Mean(b, nil)) / pooled
	}

	return &EffectSize{
		CohensD:        d,
		Interpretation: interpretCohensD(math.Abs(d)),
	}
}

func interpretCohensD(d float64) string {
	switch {
	case d < 0.2:
		return "negligible"
	case d < 0.5:
		return "small"
	case d < 0.8:
		return "medium"
	default:
		return "large"
	}
}

// Interval is a bootstrap confidence interval for mean(a) - mean(b).
type Interval struct {
	MeanDiff   float64
	Lower      float64
	Upper      float64
	Confidence float64
}

// Contains reports whether v lies inside the interval.
func (iv *Interval) Contains(v float64) bool {
	return iv.Lower <= v && v <= iv.Upper
}

// BootstrapConfidenceInterval estimates a percentile interval for the
// difference of means by resampling with replacement. The same seed gives
// the same interval.
func BootstrapConfidenceInterval(a, b []float64, iterations int, confidence float64, seed uint64) *Interval {
	if len(a) == 0 || len(b) == 0 || iterations <= 0 {
		return &Interval{Confidence: confidence}
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	bufA := make([]float64, len(a))
	bufB := make([]float64, len(b))

	diffs := make([]float64, iterations)
	for i := range diffs {
		resample(rng, a, bufA)
		resample(rng, b, bufB)
		diffs[i] = stat.Mean(bufA, nil) - stat.Mean(bufB, nil)
	}
	slices.Sort(diffs)

	alpha := 1 - confidence
	return &Interval{
		MeanDiff:   stat.Mean(a, nil) - stat.Mean(b, nil),
		Lower:      stat.Quantile(alpha/2, stat.Empirical, diffs, nil),
		Upper:      stat.Quantile(1-alpha/2, stat.Empirical, diffs, nil),
		Confidence: confidence,
	}
}

func resample(rng *rand.Rand, src, dst []float64) {
	for i := range dst {
		dst[i] = src[rng.IntN(len(src))]
	}
}
