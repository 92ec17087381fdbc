package ports

import (
	"context"

	"github.com/vendorhub/supplier-portal/internal/core/domain"
)

// SessionRepository persists session records keyed by SID. Save replaces any
// existing record for the same SID: concurrent credential operations on one
// session resolve as last write wins.
type SessionRepository interface {
	// Find returns the record for sid, or domain.ErrSessionNotFound.
	Find(ctx context.Context, sid string) (*domain.Session, error)
	Save(ctx context.Context, s *domain.Session) error
	Delete(ctx context.Context, sid string) error
}
