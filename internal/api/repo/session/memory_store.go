package session_repo

import (
	"context"
	"sync"
	"time"

	"ticketpix/internal/api/domain/checkout"
)

// MemoryStore is a process-local session store for single-instance setups
// without Redis. Expired sessions are dropped on access, and Save sweeps the
// whole map at most once per ttl so abandoned sessions do not accumulate.
type MemoryStore struct {
	mu        sync.Mutex
	ttl       time.Duration
	now       func() time.Time
	sessions  map[string]memoryEntry
	lastSweep time.Time
}

type memoryEntry struct {
	session   checkout.Session
	expiresAt time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) Get(_ context.Context, id string) (checkout.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok {
		return checkout.Session{}, checkout.ErrSessionNotFound
	}
	if s.ttl > 0 && !s.now().Before(entry.expiresAt) {
		delete(s.sessions, id)
		return checkout.Session{}, checkout.ErrSessionNotFound
	}
	return entry.session, nil
}

func (s *MemoryStore) Save(_ context.Context, sess checkout.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.ttl > 0 && now.Sub(s.lastSweep) >= s.ttl {
		s.sweep(now)
	}

	s.sessions[sess.ID] = memoryEntry{session: sess, expiresAt: now.Add(s.ttl)}
	return nil
}

func (s *MemoryStore) sweep(now time.Time) {
	for id, entry := range s.sessions {
		if !now.Before(entry.expiresAt) {
			delete(s.sessions, id)
		}
	}
	s.lastSweep = now
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}
