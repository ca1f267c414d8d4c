// Package simulation replays key traces against capacity-bounded caches and
// counts hits, misses and evictions. Replays involve no timing, so the same
// trace always gives the same result.
package simulation

import "slices"

// Simulator replays traces against a set of policies.
type Simulator struct {
	policies []Policy
}

// NewSimulator creates a Simulator over the given policies. Each policy keeps
// its state across calls to Simulate.
func NewSimulator(policies ...Policy) *Simulator {
	return &Simulator{policies: policies}
}

// Result contains the outcome of replaying a trace against one policy.
type Result struct {
	PolicyName string
	Lookups    int
	Hits       int
	Misses     int
	Evictions  int
	KeyHits    map[string]int // Key -> lookup count.
	Resident   []string       // Cached keys after the replay, MRU first.
}

// HitRate returns the hit rate as a percentage.
func (r *Result) HitRate() float64 {
	if r.Lookups == 0 {
		return 0
	}
	return float64(r.Hits) / float64(r.Lookups) * 100
}

// Simulate replays trace against every policy, keyed by policy name.
func (s *Simulator) Simulate(trace []string) map[string]*Result {
	results := make(map[string]*Result, len(s.policies))

	for _, p := range s.policies {
		res := &Result{
			PolicyName: p.Name(),
			KeyHits:    make(map[string]int),
		}
		for _, key := range trace {
			hit, evicted := p.Access(key)
			res.Lookups++
			res.KeyHits[key]++
			if hit {
				res.Hits++
			} else {
				res.Misses++
			}
			if evicted {
				res.Evictions++
			}
		}
		res.Resident = p.Resident()
		results[p.Name()] = res
	}

	return results
}

// Agree reports whether two replays of the same trace made identical
// decisions: same hits, same evictions and the same final recency order.
func Agree(a, b *Result) bool {
	return a.Lookups == b.Lookups &&
		a.Hits == b.Hits &&
		a.Evictions == b.Evictions &&
		slices.Equal(a.Resident, b.Resident)
}
