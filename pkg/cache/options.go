package cache

import "time"

// Option configures a cache backend. Options that do not apply to a backend
// are ignored by it.
type Option func(*options)

type options struct {
	prefix          string
	ttl             time.Duration
	cleanupInterval time.Duration
	maxEntries      int
}

func newOptions(opts []Option) options {
	o := options{
		ttl:             time.Hour,
		cleanupInterval: time.Minute,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithTTL sets the expiry used when Set gets a zero TTL. Default: 1 hour.
func WithTTL(d time.Duration) Option {
	return func(o *options) {
		o.ttl = d
	}
}

// WithPrefix namespaces Redis keys as "{prefix}:{key}".
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithCleanupInterval sets how often the in-memory backend drops expired
// entries. Zero disables the background sweep. Default: 1 minute.
func WithCleanupInterval(d time.Duration) Option {
	return func(o *options) {
		o.cleanupInterval = d
	}
}

// WithMaxEntries bounds the in-memory backend; the least recently used entry
// is evicted when full. Zero means unbounded.
func WithMaxEntries(n int) Option {
	return func(o *options) {
		o.maxEntries = n
	}
}
