package store

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/buildhealth/buildhealth/pkg/summary"
)

// Entry is a build summary together with the time it was last received.
type Entry struct {
	Key       string
	Payload   summary.Payload
	UpdatedAt time.Time
}

// Store is a thread-safe in-memory summary store, keyed by summary key
// (the Jira issue key of the build). A background goroutine (Run)
// periodically evicts entries that have not been republished within the
// configured TTL.
type Store struct {
	mu   sync.RWMutex
	data map[string]*Entry
	ttl  time.Duration
	now  func() time.Time // injectable for deterministic tests
}

// New creates a Store with the given TTL.
func New(ttl time.Duration) *Store {
	return &Store{
		data: make(map[string]*Entry),
		ttl:  ttl,
		now:  time.Now,
	}
}

// TTL returns the configured entry lifetime.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Put stores or replaces the summary for key.
func (s *Store) Put(key string, p summary.Payload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = &Entry{
		Key:       key,
		Payload:   p,
		UpdatedAt: s.now(),
	}
}

// Get returns the Entry for the given key and a boolean indicating whether
// an entry was found. The entry may be stale if TTL has elapsed.
func (s *Store) Get(key string) (*Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.data[key]
	return e, ok
}

// List returns all entries whose UpdatedAt is within the TTL, sorted by
// key so consumers see a stable order. Stale entries that have not yet
// been evicted are excluded.
func (s *Store) List() []*Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cutoff := s.now().Add(-s.ttl)
	out := make([]*Entry, 0, len(s.data))
	for _, e := range s.data {
		if e.UpdatedAt.After(cutoff) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Count returns the total number of entries currently held, including
// stale ones.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Evict removes entries whose UpdatedAt is older than now minus TTL.
// It returns the number of entries removed.
func (s *Store) Evict(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := now.Add(-s.ttl)
	removed := 0
	for key, e := range s.data {
		if !e.UpdatedAt.After(cutoff) {
			delete(s.data, key)
			removed++
		}
	}
	return removed
}

// Run starts the background TTL eviction loop. It ticks at half the TTL
// interval (minimum 1 second) so entries are evicted promptly. Run blocks
// until ctx is cancelled.
func (s *Store) Run(ctx context.Context) {
	interval := s.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := s.Evict(now); n > 0 {
				slog.Debug("store: evicted stale summaries", "count", n)
			}
		}
	}
}
