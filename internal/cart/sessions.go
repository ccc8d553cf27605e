package cart

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// Sessions hands out one Store per cart session, building it on first use.
type Sessions struct {
	storage Storage
	logger  zerolog.Logger

	mu     sync.Mutex
	stores map[string]*Store
	sfg    singleflight.Group // concurrent first requests share one load
}

func NewSessions(storage Storage, logger zerolog.Logger) *Sessions {
	return &Sessions{
		storage: storage,
		logger:  logger,
		stores:  make(map[string]*Store),
	}
}

func (s *Sessions) lookup(session string) (*Store, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.stores[session]
	return st, ok
}

// Get returns the live store for session.
func (s *Sessions) Get(ctx context.Context, session string) *Store {
	if st, ok := s.lookup(session); ok {
		return st
	}
	v, _, _ := s.sfg.Do(session, func() (interface{}, error) {
		if st, ok := s.lookup(session); ok {
			return st, nil
		}
		st := NewStore(ctx, StorageKey(session), s.storage, s.logger)
		s.mu.Lock()
		s.stores[session] = st
		s.mu.Unlock()
		return st, nil
	})
	return v.(*Store)
}

// Discard drops the live store for session. Saved state stays in storage, so
// the next Get restores it.
func (s *Sessions) Discard(session string) {
	s.mu.Lock()
	delete(s.stores, session)
	s.mu.Unlock()
}
