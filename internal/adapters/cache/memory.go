package cache

import (
	"context"
	"sync"
	"time"

	"github.com/okian/wbdash/internal/domain/model"
)

// entry is a node of the recency list, newest at head.
type entry struct {
	key       string
	records   []model.IndicatorRecord
	expiresAt time.Time
	prev      *entry
	next      *entry
}

// reset clears the entry for reuse.
func (e *entry) reset() {
	*e = entry{}
}

// memoryStore implements Store in memory.
// Bounded mode (maxEntries > 0) evicts the oldest insertion first.
// Unbounded mode (maxEntries <= 0) only drops entries on Purge.
type memoryStore struct {
	mu         sync.Mutex
	entries    map[string]*entry
	head, tail *entry
	maxEntries int
	ttl        time.Duration
	now        func() time.Time
	pool       sync.Pool
}

// NewMemoryStore creates an in-memory Store.
func NewMemoryStore(opts ...Option) Store {
	s := &memoryStore{
		entries:    make(map[string]*entry),
		maxEntries: 4096,
		ttl:        DefaultTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.pool.New = func() interface{} { return &entry{} }
	return s
}

func (s *memoryStore) Get(_ context.Context, key string) ([]model.IndicatorRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if !s.now().Before(e.expiresAt) {
		s.remove(e)
		return nil, false
	}
	return e.records, true
}

func (s *memoryStore) Set(_ context.Context, key string, records []model.IndicatorRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.entries[key]; ok {
		s.remove(old)
	}
	if s.maxEntries > 0 && len(s.entries) >= s.maxEntries {
		s.remove(s.tail)
	}

	e := s.pool.Get().(*entry)
	e.key = key
	e.records = records
	e.expiresAt = s.now().Add(s.ttl)
	e.next = s.head
	if s.head != nil {
		s.head.prev = e
	}
	s.head = e
	if s.tail == nil {
		s.tail = e
	}
	s.entries[key] = e
	return nil
}

func (s *memoryStore) Purge(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for e := s.tail; e != nil; {
		prev := e.prev
		if !now.Before(e.expiresAt) {
			s.remove(e)
			removed++
		}
		e = prev
	}
	return removed, nil
}

func (s *memoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *memoryStore) Close() error { return nil }

// remove unlinks e. Must be called with s.mu held.
func (s *memoryStore) remove(e *entry) {
	if e == nil {
		return
	}
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		s.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		s.tail = e.prev
	}
	delete(s.entries, e.key)
	e.reset()
	s.pool.Put(e)
}
