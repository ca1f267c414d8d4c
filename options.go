package lrucache

// Option configures a Cache.
type Option[K comparable, V any] interface {
	apply(*options[K, V])
}

// options holds the cache configuration.
type options[K comparable, V any] struct {
	onEvict      func(K, V)
	initialAlloc int
}

// defaultOptions returns the default configuration.
func defaultOptions[K comparable, V any]() options[K, V] {
	return options[K, V]{
		initialAlloc: 64,
	}
}

// optionFunc wraps a function to implement Option.
type optionFunc[K comparable, V any] func(*options[K, V])

// Compile-time check that optionFunc implements Option.
var _ Option[string, string] = optionFunc[string, string](nil)

func (f optionFunc[K, V]) apply(o *options[K, V]) { f(o) }

// WithEvictCallback sets a function called with every entry evicted to make
// room for a new key, and with every entry dropped by Purge.
// The callback runs after the cache lock is released, so it may call back
// into the cache.
func WithEvictCallback[K comparable, V any](fn func(key K, value V)) Option[K, V] {
	return optionFunc[K, V](func(o *options[K, V]) {
		o.onEvict = fn
	})
}

// WithInitialAlloc sets how many entries to allocate up front.
// It is clamped to the capacity. Default is 64.
func WithInitialAlloc[K comparable, V any](n int) Option[K, V] {
	return optionFunc[K, V](func(o *options[K, V]) {
		o.initialAlloc = n
	})
}
