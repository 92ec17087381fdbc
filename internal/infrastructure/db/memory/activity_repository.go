package memory

import (
	"context"
	"sync"

	"github.com/vendorhub/supplier-portal/internal/core/domain"
)

const defaultActivityCapacity = 500

// ActivityRepository keeps the most recent auth trail entries in memory.
// It stands in when no Mongo is configured; the trail then lives only as
// long as the process.
type ActivityRepository struct {
	mu       sync.Mutex
	entries  []*domain.ActivityEntry
	capacity int
}

func NewActivityRepository(capacity int) *ActivityRepository {
	if capacity <= 0 {
		capacity = defaultActivityCapacity
	}
	return &ActivityRepository{capacity: capacity}
}

func (r *ActivityRepository) Append(_ context.Context, entry *domain.ActivityEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := *entry
	r.entries = append(r.entries, &c)
	if len(r.entries) > r.capacity {
		r.entries = r.entries[len(r.entries)-r.capacity:]
	}
	return nil
}

// List returns up to limit entries, newest first.
func (r *ActivityRepository) List(_ context.Context, limit int) ([]*domain.ActivityEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 || limit > len(r.entries) {
		limit = len(r.entries)
	}
	out := make([]*domain.ActivityEntry, 0, limit)
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		c := *r.entries[i]
		out = append(out, &c)
	}
	return out, nil
}
