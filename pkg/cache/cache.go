package cache

import (
	"context"
	"sync"
	"time"
)

const defaultTTL = 24 * time.Hour

// Kind names a cached resource collection, usually a store table.
type Kind string

// Options configure the snapshot store.
type Options struct {
	TTL time.Duration
	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

// Store holds at most one snapshot per resource kind: the last successful
// full fetch plus its timestamp. It is an owned component injected into
// request handlers, not process-global state.
type Store struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[Kind]entry
}

type entry struct {
	data      any
	fetchedAt time.Time
}

func New(opts Options) *Store {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Store{
		ttl:     ttl,
		now:     now,
		entries: make(map[Kind]entry),
	}
}

// Read returns the cached snapshot for kind, refetching through fetch when
// forced, absent, or expired. A snapshot inside its TTL is returned unchanged
// even if the underlying store has moved on; read-your-writes only holds for
// the request that performed the write and its invalidation.
func (s *Store) Read(ctx context.Context, kind Kind, refresh bool, fetch func(context.Context) (any, error)) (any, error) {
	return s.ReadWithTTL(ctx, kind, s.ttl, refresh, fetch)
}

// ReadWithTTL is Read with a per-call staleness bound, used by derived
// aggregates that live on a shorter window than collection listings.
func (s *Store) ReadWithTTL(ctx context.Context, kind Kind, ttl time.Duration, refresh bool, fetch func(context.Context) (any, error)) (any, error) {
	s.mu.Lock()
	cached, ok := s.entries[kind]
	s.mu.Unlock()

	if !refresh && ok && s.now().Sub(cached.fetchedAt) <= ttl {
		return cached.data, nil
	}

	// Fetch outside the lock; concurrent refreshes are safe since the later
	// write overwrites the earlier with an equally valid snapshot.
	data, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.entries[kind] = entry{data: data, fetchedAt: s.now()}
	s.mu.Unlock()
	return data, nil
}

// Invalidate drops the snapshots for the given kinds unconditionally. Called
// immediately after any successful write affecting those collections.
func (s *Store) Invalidate(kinds ...Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, kind := range kinds {
		delete(s.entries, kind)
	}
}
