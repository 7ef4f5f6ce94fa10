package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/blstream/ShopMe-Backend/internal/core/port"
)

// LoginAttemptStore tracks login attempts per identifier in Redis sorted sets,
// scored by the attempt timestamp so the window can slide.
type LoginAttemptStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewLoginAttemptStore constructs a sliding-window attempt store. Keys expire
// after ttl so abandoned identifiers do not accumulate.
func NewLoginAttemptStore(client *redis.Client, prefix string, ttl time.Duration) *LoginAttemptStore {
	return &LoginAttemptStore{client: client, prefix: prefix, ttl: ttl}
}

// RecordAttempt appends an attempt at the given instant and refreshes the key TTL.
func (s *LoginAttemptStore) RecordAttempt(ctx context.Context, identifier string, at time.Time) error {
	key := s.key(identifier)

	pipe := s.client.TxPipeline()
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(at.UnixNano()), Member: at.UnixNano()})
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record login attempt: %w", err)
	}
	return nil
}

// CountAttempts returns the number of attempts inside the window ending at reference.
func (s *LoginAttemptStore) CountAttempts(ctx context.Context, identifier string, window time.Duration, reference time.Time) (int, error) {
	if window <= 0 {
		return 0, errors.New("window must be positive")
	}

	count, err := s.client.ZCount(ctx, s.key(identifier),
		strconv.FormatInt(reference.Add(-window).UnixNano(), 10),
		strconv.FormatInt(reference.UnixNano(), 10),
	).Result()
	if err != nil {
		return 0, fmt.Errorf("count login attempts: %w", err)
	}
	return int(count), nil
}

// TrimWindow drops attempts that slid out of the window relative to reference.
func (s *LoginAttemptStore) TrimWindow(ctx context.Context, identifier string, window time.Duration, reference time.Time) error {
	if window <= 0 {
		return errors.New("window must be positive")
	}

	threshold := strconv.FormatInt(reference.Add(-window).UnixNano(), 10)
	if err := s.client.ZRemRangeByScore(ctx, s.key(identifier), "-inf", threshold).Err(); err != nil {
		return fmt.Errorf("trim login attempts: %w", err)
	}
	return nil
}

// OldestAttempt returns the earliest attempt still inside the window, used to
// tell the caller when the limit opens up again.
func (s *LoginAttemptStore) OldestAttempt(ctx context.Context, identifier string, window time.Duration, reference time.Time) (time.Time, bool, error) {
	if window <= 0 {
		return time.Time{}, false, errors.New("window must be positive")
	}

	values, err := s.client.ZRangeByScore(ctx, s.key(identifier), &redis.ZRangeBy{
		Min:   strconv.FormatInt(reference.Add(-window).UnixNano(), 10),
		Max:   strconv.FormatInt(reference.UnixNano(), 10),
		Count: 1,
	}).Result()
	if err != nil {
		return time.Time{}, false, fmt.Errorf("read oldest login attempt: %w", err)
	}
	if len(values) == 0 {
		return time.Time{}, false, nil
	}

	nanos, err := strconv.ParseInt(values[0], 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse attempt timestamp: %w", err)
	}
	return time.Unix(0, nanos), true, nil
}

func (s *LoginAttemptStore) key(identifier string) string {
	if s.prefix == "" {
		return identifier
	}
	return s.prefix + ":" + identifier
}

var _ port.RateLimitStore = (*LoginAttemptStore)(nil)
