package ports

import (
	"context"

	"github.com/vendorhub/supplier-portal/internal/core/domain"
)

// ActivityRepository stores the auth activity trail. Append is best-effort
// from the caller's point of view: the session service logs failures and
// moves on.
type ActivityRepository interface {
	Append(ctx context.Context, entry *domain.ActivityEntry) error
	// List returns up to limit entries, newest first.
	List(ctx context.Context, limit int) ([]*domain.ActivityEntry, error)
}
