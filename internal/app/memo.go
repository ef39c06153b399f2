package service

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Default model memo bounds.
const (
	defaultMemoEntries = 64
)

// modelMemo keeps trained model views for a while and collapses concurrent
// trainings of the same request into one. Training is deterministic, so a
// view is valid for as long as the fetched data it was built from.
type modelMemo struct {
	mu      sync.Mutex
	ttl     time.Duration
	max     int
	entries map[string]memoEntry
	flight  singleflight.Group
}

type memoEntry struct {
	view    ModelView
	expires time.Time
}

func newModelMemo(ttl time.Duration, maxEntries int) *modelMemo {
	if maxEntries <= 0 {
		maxEntries = defaultMemoEntries
	}
	return &modelMemo{ttl: ttl, max: maxEntries, entries: make(map[string]memoEntry)}
}

// Do returns the memoized view for key or runs train once for all
// concurrent callers. Failed trainings are not kept.
func (m *modelMemo) Do(key string, train func() (ModelView, error)) (ModelView, error) {
	if v, ok := m.get(key); ok {
		return v, nil
	}
	out, err, _ := m.flight.Do(key, func() (interface{}, error) {
		if v, ok := m.get(key); ok {
			return v, nil
		}
		v, err := train()
		if err != nil {
			return ModelView{}, err
		}
		m.put(key, v)
		return v, nil
	})
	if err != nil {
		return ModelView{}, err
	}
	return out.(ModelView), nil
}

func (m *modelMemo) get(key string) (ModelView, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return ModelView{}, false
	}
	if time.Now().After(e.expires) {
		delete(m.entries, key)
		return ModelView{}, false
	}
	return e.view, true
}

func (m *modelMemo) put(key string, v ModelView) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	if len(m.entries) >= m.max {
		for k, e := range m.entries {
			if now.After(e.expires) {
				delete(m.entries, k)
			}
		}
	}
	// Still full: drop the entry closest to expiry.
	if len(m.entries) >= m.max {
		var oldest string
		for k, e := range m.entries {
			if oldest == "" || e.expires.Before(m.entries[oldest].expires) {
				oldest = k
			}
		}
		delete(m.entries, oldest)
	}
	m.entries[key] = memoEntry{view: v, expires: now.Add(m.ttl)}
}

// Len returns the number of memoized views, expired ones included.
func (m *modelMemo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
