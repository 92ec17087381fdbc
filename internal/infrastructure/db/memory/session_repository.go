// Package memory holds the in-process store backends: the default for a
// single gateway replica and for demo installations, where pulling in Redis
// or Mongo buys nothing.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/vendorhub/supplier-portal/internal/core/domain"
)

// SessionRepository keeps session records in a guarded map. Records are
// cloned on the way in and out so callers never share mutable state with
// the store. Save replaces whole records: last write wins.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[string]*domain.Session)}
}

func (r *SessionRepository) Find(_ context.Context, sid string) (*domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sess, ok := r.sessions[sid]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess.Clone(), nil
}

func (r *SessionRepository) Save(_ context.Context, sess *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[sess.SID] = sess.Clone()
	return nil
}

// Delete is idempotent: removing a session that is already gone is fine.
func (r *SessionRepository) Delete(_ context.Context, sid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, sid)
	return nil
}

// Janitor sweeps expired records every interval until ctx is cancelled.
// Redis evicts by TTL on its own; this store needs the sweep so abandoned
// sessions do not accumulate for the life of the process.
func (r *SessionRepository) Janitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			r.sweep(now.UTC())
		}
	}
}

func (r *SessionRepository) sweep(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for sid, sess := range r.sessions {
		if sess.Expired(now) {
			delete(r.sessions, sid)
		}
	}
}
