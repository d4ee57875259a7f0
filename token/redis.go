package token

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig selects a single, cluster or sentinel deployment the way
// redis.UniversalOptions does.
type RedisConfig struct {
	Addrs      []string `json:"addrs" mapstructure:"addrs" default:"localhost:6379" validate:"min=1"`
	MasterName string   `json:"master_name" mapstructure:"master_name"`
	Username   string   `json:"username" mapstructure:"username"`
	Password   string   `json:"password" mapstructure:"password"`
	DB         int      `json:"db" mapstructure:"db"`
	// Key holds the token.
	Key string `json:"key" mapstructure:"key" validate:"required"`
	// DialTimeout in milliseconds.
	DialTimeout int64 `json:"dial_timeout" mapstructure:"dial_timeout" default:"5000"`
}

// Client builds a universal client from c.
func (c *RedisConfig) Client() redis.UniversalClient {
	return redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:       c.Addrs,
		MasterName:  c.MasterName,
		Username:    c.Username,
		Password:    c.Password,
		DB:          c.DB,
		DialTimeout: time.Duration(c.DialTimeout) * time.Millisecond,
	})
}

// Redis reads the token from a key on every call, so a token refreshed by
// another process is picked up immediately.
type Redis struct {
	client redis.UniversalClient
	key    string
}

// NewRedis reads key through client.
func NewRedis(client redis.UniversalClient, key string) *Redis {
	return &Redis{client: client, key: key}
}

func (r *Redis) Token(ctx context.Context) (string, error) {
	tok, err := r.client.Get(ctx, r.key).Result()
	if stderrors.Is(err, redis.Nil) {
		return "", fmt.Errorf("%w: redis key %q", ErrTokenNotFound, r.key)
	}
	if err != nil {
		return "", err
	}
	if tok == "" {
		return "", ErrEmptyToken
	}
	return tok, nil
}

// Close closes the underlying client.
func (r *Redis) Close() error {
	return r.client.Close()
}
