package auth

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionStore keeps bearer sessions in Redis under a TTL.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func sessionKey(token string) string {
	return "session:" + token
}

// Create mints a new session token for the user.
func (s *SessionStore) Create(ctx context.Context, userID, tenantID int64) (Session, error) {
	sess := Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		TenantID:  tenantID,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	payload, err := json.Marshal(sess)
	if err != nil {
		return Session{}, err
	}
	if err := s.client.Set(ctx, sessionKey(sess.Token), payload, s.ttl).Err(); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Get resolves a token, refreshing its TTL on hit.
func (s *SessionStore) Get(ctx context.Context, token string) (Session, error) {
	payload, err := s.client.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Session{}, ErrSessionNotFound
		}
		return Session{}, err
	}
	var sess Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return Session{}, err
	}
	if err := s.client.Expire(ctx, sessionKey(token), s.ttl).Err(); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Delete revokes a token. Deleting an unknown token is not an error.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKey(token)).Err()
}
