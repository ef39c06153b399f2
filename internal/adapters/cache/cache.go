// Package cache provides the process-wide read-through fetch cache.
package cache

import (
	"context"
	"time"

	"github.com/okian/wbdash/internal/domain/model"
	"github.com/okian/wbdash/pkg/logger"
	"github.com/okian/wbdash/pkg/metrics"
)

// DefaultTTL is the time-to-live of cached fetch results.
const DefaultTTL = time.Hour

// Store keeps fetch results under a query key until they expire.
type Store interface {
	// Get returns the fresh records stored under key.
	Get(ctx context.Context, key string) ([]model.IndicatorRecord, bool)
	// Set stores records under key for the store's TTL.
	Set(ctx context.Context, key string, records []model.IndicatorRecord) error
	// Purge removes expired entries and returns how many were removed.
	Purge(ctx context.Context) (int, error)
	// Len returns the number of stored entries, expired or not.
	Len() int
	Close() error
}

// ReadThrough serves queries from a Store and fills it from a source
// fetcher on a miss. Absent results are not cached.
type ReadThrough struct {
	source model.Fetcher
	store  Store
	log    logger.Logger
}

// NewReadThrough wraps source with store.
func NewReadThrough(source model.Fetcher, store Store, log logger.Logger) *ReadThrough {
	return &ReadThrough{source: source, store: store, log: log}
}

// Fetch implements model.Fetcher.
func (r *ReadThrough) Fetch(ctx context.Context, q model.Query) []model.IndicatorRecord {
	key := q.Key()
	if recs, ok := r.store.Get(ctx, key); ok {
		metrics.RecordCacheHit()
		return recs
	}
	metrics.RecordCacheMiss()

	recs := r.source.Fetch(ctx, q)
	if len(recs) == 0 {
		return nil
	}
	if err := r.store.Set(ctx, key, recs); err != nil {
		r.log.Warn(ctx, "cache store failed", logger.String("key", key), logger.Error(err))
	}
	metrics.UpdateCacheEntries(r.store.Len())
	return recs
}

// Store exposes the underlying store.
func (r *ReadThrough) Store() Store { return r.store }
