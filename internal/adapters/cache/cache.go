// Package cache holds recently fetched rankings snapshots for the lifetime
// of the process. Entries expire after a TTL; there is no cross-session
// persistence.
package cache

import (
	"sync"
	"time"

	"github.com/cfbranks/rankview/internal/domain/types"
)

// Key identifies one default-weight rankings query. Custom-weight queries
// bypass the cache entirely.
type Key struct {
	Year int
	Week int
}

type entry struct {
	resp     types.RankingsResponse
	storedAt time.Time
}

// Store is a mutex-guarded TTL map of rankings snapshots.
type Store struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[Key]entry
}

// New creates a Store with the given options.
func New(opts ...Option) *Store {
	s := &Store{
		ttl:     10 * time.Minute,
		now:     time.Now,
		entries: make(map[Key]entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns a live snapshot for key, dropping it if expired.
func (s *Store) Get(key Key) (types.RankingsResponse, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return types.RankingsResponse{}, false
	}
	if s.now().Sub(e.storedAt) > s.ttl {
		delete(s.entries, key)
		return types.RankingsResponse{}, false
	}
	return e.resp, true
}

// Put stores a snapshot for key, replacing any previous one.
func (s *Store) Put(key Key, resp types.RankingsResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{resp: resp, storedAt: s.now()}
}

// Len reports the number of entries, expired or not.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
