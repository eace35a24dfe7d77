package redispass

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "pass:"

// Store maps QR badge tokens to visit ids with a TTL, so a guard's
// phone can resolve a badge without a database round trip. The visits
// table keeps the token as well; redis is a cache, not the source of
// truth.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

func (s *Store) Put(ctx context.Context, token string, visitID int64) error {
	return s.rdb.Set(ctx, keyPrefix+token, visitID, s.ttl).Err()
}

func (s *Store) Resolve(ctx context.Context, token string) (int64, bool, error) {
	val, err := s.rdb.Get(ctx, keyPrefix+token).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

func (s *Store) Revoke(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, keyPrefix+token).Err()
}
