package cache

import "time"

// Option applies a configuration option to the in-memory store.
type Option func(*memoryStore)

// WithMaxEntries bounds the store. Values <= 0 make it unbounded.
func WithMaxEntries(n int) Option {
	return func(s *memoryStore) {
		s.maxEntries = n
	}
}

// WithTTL sets the entry time-to-live.
func WithTTL(ttl time.Duration) Option {
	return func(s *memoryStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *memoryStore) {
		if now != nil {
			s.now = now
		}
	}
}
