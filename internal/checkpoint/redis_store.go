package checkpoint

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"lpec/internal/structures"
)

// RedisStore keeps the checkpoint slot in Redis for deployments without a
// persistent filesystem. Records never expire; they are overwritten on every
// save.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(conf structures.RedisConfig) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr:     conf.Addr,
			Password: conf.Password,
			DB:       conf.DB,
		}),
	}
}

func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return raw, true, nil
}

func (s *RedisStore) Put(ctx context.Context, key string, raw []byte) error {
	return s.client.Set(ctx, key, raw, 0).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
