// Package loyalty keeps the completed-booking counter behind the stamp card.
package loyalty

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

// Store is the persistent counter store. Counters are decimal text under a single key.
type Store interface {
	// ReadCount returns the counter, or 0 when it is absent or unparsable.
	ReadCount(ctx context.Context, key string) (int, error)
	// Increment adds one and returns the new value.
	Increment(ctx context.Context, key string) (int, error)
	// IncrementOnce adds one unless marker has already been recorded.
	// It returns the resulting count and whether this call applied it.
	IncrementOnce(ctx context.Context, key, marker string) (int, bool, error)
}

const (
	maxIncrementAttempts = 64
	markerTTL            = 90 * 24 * time.Hour
)

// RedisStore implements Store with optimistic WATCH/MULTI transactions, so
// concurrent writers from several processes cannot lose increments.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func parseCount(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readCount(ctx context.Context, c getter, key string) (int, error) {
	raw, err := c.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read loyalty count: %w", err)
	}
	return parseCount(raw), nil
}

func (s *RedisStore) ReadCount(ctx context.Context, key string) (int, error) {
	return readCount(ctx, s.client, key)
}

func (s *RedisStore) Increment(ctx context.Context, key string) (int, error) {
	n, _, err := s.increment(ctx, key, "")
	return n, err
}

func (s *RedisStore) IncrementOnce(ctx context.Context, key, marker string) (int, bool, error) {
	if marker == "" {
		return 0, false, errors.New("loyalty: increment marker is required")
	}
	return s.increment(ctx, key, marker)
}

func (s *RedisStore) increment(ctx context.Context, key, marker string) (int, bool, error) {
	var (
		result  int
		applied bool
	)
	keys := []string{key}
	if marker != "" {
		keys = append(keys, marker)
	}

	txf := func(tx *redis.Tx) error {
		current, err := readCount(ctx, tx, key)
		if err != nil {
			return err
		}
		if marker != "" {
			seen, err := tx.Exists(ctx, marker).Result()
			if err != nil {
				return fmt.Errorf("failed to check loyalty marker: %w", err)
			}
			if seen > 0 {
				result, applied = current, false
				return nil
			}
		}
		next := current + 1
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, strconv.Itoa(next), 0)
			if marker != "" {
				pipe.Set(ctx, marker, "1", markerTTL)
			}
			return nil
		})
		if err != nil {
			return err
		}
		result, applied = next, true
		return nil
	}

	for attempt := 0; attempt < maxIncrementAttempts; attempt++ {
		err := s.client.Watch(ctx, txf, keys...)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return 0, false, err
		}
		return result, applied, nil
	}
	return 0, false, fmt.Errorf("loyalty: too much contention on %s", key)
}
