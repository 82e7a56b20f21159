package session_repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ticketpix/internal/api/domain/checkout"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "checkout:session:"

// RedisStore keeps checkout sessions as JSON values that expire after ttl.
// Every save pushes the expiry forward.
type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisStore(client redis.UniversalClient, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, id string) (checkout.Session, error) {
	raw, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return checkout.Session{}, checkout.ErrSessionNotFound
	}
	if err != nil {
		return checkout.Session{}, fmt.Errorf("redis get: %w", err)
	}

	var sess checkout.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return checkout.Session{}, fmt.Errorf("decode session: %w", err)
	}
	return sess, nil
}

func (s *RedisStore) Save(ctx context.Context, sess checkout.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+sess.ID, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
