package session

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/rideshare-client/internal/config"
)

// RedisStorage keeps the two session entries in Redis, for deployments
// where the client runs on shared terminals and sessions must survive
// the local filesystem.
type RedisStorage struct {
	client *redis.Client
}

// NewRedisStorage connects to Redis using the provided configuration.
func NewRedisStorage(cfg config.RedisConfig, logger *zap.Logger) *RedisStorage {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &RedisStorage{client: client}
}

// Load reads both entries; either missing yields no session.
func (r *RedisStorage) Load(ctx context.Context) (string, []byte, bool, error) {
	values, err := r.client.MGet(ctx, tokenKey, identityKey).Result()
	if err != nil {
		return "", nil, false, err
	}

	token, _ := values[0].(string)
	identity, _ := values[1].(string)
	if token == "" || identity == "" {
		return "", nil, false, nil
	}
	return token, []byte(identity), true, nil
}

// Save writes both entries in a single MSET.
func (r *RedisStorage) Save(ctx context.Context, token string, identity []byte) error {
	return r.client.MSet(ctx, tokenKey, token, identityKey, string(identity)).Err()
}

// Clear removes both entries together.
func (r *RedisStorage) Clear(ctx context.Context) error {
	return r.client.Del(ctx, tokenKey, identityKey).Err()
}

// Close closes the underlying client.
func (r *RedisStorage) Close() {
	if r != nil && r.client != nil {
		_ = r.client.Close()
	}
}
