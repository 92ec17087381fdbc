package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vendorhub/supplier-portal/internal/core/domain"
)

const sessionKeyPrefix = "session:"

// SessionRepository persists session records as JSON values whose Redis TTL
// tracks each record's expiry, so the store evicts dead sessions on its own.
// SET replaces whole records: concurrent writers resolve as last write wins.
type SessionRepository struct {
	client *redis.Client
}

// NewSessionRepository wraps the given Redis client.
func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{client: client}
}

func (r *SessionRepository) Find(ctx context.Context, sid string) (*domain.Session, error) {
	raw, err := r.client.Get(ctx, r.key(sid)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("session find: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("session decode: %w", err)
	}
	return &sess, nil
}

func (r *SessionRepository) Save(ctx context.Context, sess *domain.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}

	var ttl time.Duration
	if !sess.ExpiresAt.IsZero() {
		ttl = time.Until(sess.ExpiresAt)
		if ttl <= 0 {
			// Saving an already expired record just evicts the key.
			return r.client.Del(ctx, r.key(sess.SID)).Err()
		}
	}

	if err := r.client.Set(ctx, r.key(sess.SID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

// Delete is idempotent: removing a session that is already gone is fine.
func (r *SessionRepository) Delete(ctx context.Context, sid string) error {
	if err := r.client.Del(ctx, r.key(sid)).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}

func (r *SessionRepository) key(sid string) string {
	return sessionKeyPrefix + sid
}
