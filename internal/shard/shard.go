// Package shard defines the strategy for spreading string keys across a
// fixed number of independently locked stripes.
package shard

// Strategy maps keys to shard IDs.
type Strategy interface {
	// Name returns a human-readable name for this strategy.
	Name() string

	// ShardID computes the shard ID for key.
	// The returned value is in the range [0, totalShards).
	ShardID(key string, totalShards int) int
}
