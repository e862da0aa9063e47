package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Malay-Max/QuizWhiz-sub001/internal/cache"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/domain"

	"github.com/redis/go-redis/v9"
)

// maxUpdateRetries bounds the optimistic-lock retry loop.
const maxUpdateRetries = 5

// RedisSessionStore persists quiz sessions as JSON documents in Redis.
// Sessions are never expired: results stay queryable after completion.
type RedisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore creates a new session store.
func NewRedisSessionStore(client *redis.Client) domain.SessionStore {
	return &RedisSessionStore{client: client}
}

func sessionKey(id string) string {
	return cache.GenerateCacheKey("quiz", "session", id)
}

// Save persists a newly created session.
func (s *RedisSessionStore) Save(ctx context.Context, session *domain.QuizSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(session.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save session %s: %w", session.ID, err)
	}
	return nil
}

// Get loads a session by id.
func (s *RedisSessionStore) Get(ctx context.Context, id string) (*domain.QuizSession, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.NewNotFoundError(fmt.Sprintf("Quiz session not found: %s", id))
		}
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}

	var session domain.QuizSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session %s: %w", id, err)
	}
	return &session, nil
}

// Update applies mutate to the session under WATCH-based optimistic
// concurrency: if another writer changes the document between the read
// and the write, the transaction fails and the whole read-modify-write is
// retried. Two concurrent answer submissions therefore cannot both
// advance from the same cursor position.
func (s *RedisSessionStore) Update(ctx context.Context, id string, mutate func(*domain.QuizSession) error) (*domain.QuizSession, error) {
	key := sessionKey(id)
	var updated *domain.QuizSession

	txn := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return domain.NewNotFoundError(fmt.Sprintf("Quiz session not found: %s", id))
			}
			return err
		}

		var session domain.QuizSession
		if err := json.Unmarshal(data, &session); err != nil {
			return fmt.Errorf("failed to unmarshal session %s: %w", id, err)
		}

		if err := mutate(&session); err != nil {
			return err
		}
		session.Version++

		payload, err := json.Marshal(&session)
		if err != nil {
			return fmt.Errorf("failed to marshal session %s: %w", id, err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, 0)
			return nil
		})
		if err != nil {
			return err
		}
		updated = &session
		return nil
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := s.client.Watch(ctx, txn, key)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}
	return nil, domain.ErrSessionConflict
}
