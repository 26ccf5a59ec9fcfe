package store

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/subsplits/subsplits/splits/internal/compute"
)

// Entry is a row's frame together with the time it was last computed.
type Entry struct {
	Row       int                  `json:"row"`
	State     compute.DisplayState `json:"state"`
	Repaints  uint64               `json:"repaints"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// Store is a thread-safe in-memory frame store keyed by row.
type Store struct {
	mu      sync.RWMutex
	data    map[int]*Entry
	version uint64
	ttl     time.Duration
	now     func() time.Time // injectable for deterministic tests
}

// New creates a Store with the given TTL.
func New(ttl time.Duration) *Store {
	return &Store{
		data: make(map[int]*Entry),
		ttl:  ttl,
		now:  time.Now,
	}
}

// TTL returns the configured time-to-live.
func (s *Store) TTL() time.Duration { return s.ttl }

// Put records the frame computed for row. changed is the engine's repaint
// flag; only changed frames advance Version.
func (s *Store) Put(row int, ds compute.DisplayState, changed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.data[row]
	if !ok {
		e = &Entry{Row: row}
		s.data[row] = e
	}
	e.State = ds
	e.UpdatedAt = s.now()
	if changed || !ok {
		e.Repaints++
		s.version++
	}
}

// Get returns a copy of the entry for row. The entry may be stale.
func (s *Store) Get(row int) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.data[row]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Fresh reports whether e is within the TTL.
func (s *Store) Fresh(e Entry) bool {
	return e.UpdatedAt.After(s.now().Add(-s.ttl))
}

// List returns copies of all entries within the TTL, ordered by row.
func (s *Store) List() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cutoff := s.now().Add(-s.ttl)
	out := make([]Entry, 0, len(s.data))
	for _, e := range s.data {
		if e.UpdatedAt.After(cutoff) {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Row < out[j].Row })
	return out
}

// Version increases every time a stored row needs a repaint.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Count returns the number of entries held, including stale ones.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Evict removes entries older than now minus TTL and returns how many.
func (s *Store) Evict(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := now.Add(-s.ttl)
	removed := 0
	for row, e := range s.data {
		if !e.UpdatedAt.After(cutoff) {
			delete(s.data, row)
			removed++
		}
	}
	if removed > 0 {
		s.version++
	}
	return removed
}

// Truncate drops every row at or past n, used when the visible row count
// shrinks. It returns how many rows were removed.
func (s *Store) Truncate(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for row := range s.data {
		if row >= n {
			delete(s.data, row)
			removed++
		}
	}
	if removed > 0 {
		s.version++
	}
	return removed
}

// Run evicts stale rows every half TTL (at least once a second) until ctx
// is cancelled.
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
				slog.Debug("store: evicted stale rows", "count", n)
			}
		}
	}
}
