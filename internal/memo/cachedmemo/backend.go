// Package cachedmemo implements cache-aside memoization of a string transform
// over a pluggable cache Backend.
package cachedmemo

// Backend defines the interface for cache storage backends.
// Implementations handle storage and eviction and must be safe for
// concurrent use.
type Backend interface {
	// Get retrieves a cached value. Returns "", false if not found.
	Get(key string) (string, bool)

	// Set stores a value in the cache.
	Set(key, value string)

	// Len returns the number of cached entries.
	Len() int
}
