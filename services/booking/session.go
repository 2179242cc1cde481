package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fayano/models"

	"github.com/go-redis/redis/v8"
)

const sessionPrefix = "booking:session:"

// maxUpdateAttempts bounds optimistic retries when concurrent writers touch one session.
const maxUpdateAttempts = 32

// SessionStore persists wizard states between requests.
type SessionStore interface {
	Create(ctx context.Context, state models.WizardState) error
	Get(ctx context.Context, sessionID string) (models.WizardState, error)
	// Update applies fn to the stored state and saves the result atomically.
	// If fn returns an error nothing is written.
	Update(ctx context.Context, sessionID string, fn func(models.WizardState) (models.WizardState, error)) (models.WizardState, error)
	Delete(ctx context.Context, sessionID string) error
}

// RedisSessionStore keeps each session as JSON under a TTL key and updates it
// with WATCH/MULTI so concurrent updates cannot be lost.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func sessionKey(id string) string {
	return sessionPrefix + id
}

func (s *RedisSessionStore) Create(ctx context.Context, state models.WizardState) error {
	b, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal booking session: %w", err)
	}
	ok, err := s.client.SetNX(ctx, sessionKey(state.SessionID), b, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to cache booking session: %w", err)
	}
	if !ok {
		return fmt.Errorf("booking session %s already exists", state.SessionID)
	}
	return nil
}

func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (models.WizardState, error) {
	return s.load(ctx, s.client, sessionID)
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (s *RedisSessionStore) load(ctx context.Context, c getter, sessionID string) (models.WizardState, error) {
	data, err := c.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.WizardState{}, ErrSessionNotFound
	}
	if err != nil {
		return models.WizardState{}, fmt.Errorf("failed to load booking session: %w", err)
	}
	var state models.WizardState
	if err := json.Unmarshal(data, &state); err != nil {
		return models.WizardState{}, fmt.Errorf("failed to parse booking session: %w", err)
	}
	return state, nil
}

func (s *RedisSessionStore) Update(ctx context.Context, sessionID string, fn func(models.WizardState) (models.WizardState, error)) (models.WizardState, error) {
	key := sessionKey(sessionID)
	var updated models.WizardState

	txf := func(tx *redis.Tx) error {
		current, err := s.load(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		next, err := fn(current)
		if err != nil {
			return err
		}
		b, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("failed to marshal booking session: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, b, s.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		updated = next
		return nil
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return models.WizardState{}, err
		}
		return updated, nil
	}
	return models.WizardState{}, fmt.Errorf("booking session %s: too much contention", sessionID)
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	n, err := s.client.Del(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return fmt.Errorf("failed to cancel booking session: %w", err)
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}
