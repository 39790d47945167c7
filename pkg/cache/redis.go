package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/authzkit/authzkit/pkg/scopes"
)

// Config holds connection settings for the redis-backed cache.
type Config struct {
	ConnectionURL  string        `env:"AUTHZ_REDIS_URL,required" envDefault:"redis://localhost:6379/0"` // ConnectionURL in the format "redis://:password@localhost:6379/0"
	TTL            time.Duration `env:"AUTHZ_CACHE_TTL" envDefault:"5m"`                                // TTL is how long a resolved directive set stays cached.
	RetryAttempts  int           `env:"AUTHZ_REDIS_RETRY_ATTEMPTS" envDefault:"3"`                      // RetryAttempts is the number of connection attempts.
	RetryInterval  time.Duration `env:"AUTHZ_REDIS_RETRY_INTERVAL" envDefault:"5s"`                     // RetryInterval is the interval between attempts.
	ConnectTimeout time.Duration `env:"AUTHZ_REDIS_CONNECT_TIMEOUT" envDefault:"30s"`                   // ConnectTimeout bounds the whole connect loop.
}

// Connect establishes a redis connection with retry so the cache survives
// transient startup ordering issues.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	opt, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseConnString, err)
	}

	for attempt := 0; attempt < cfg.RetryAttempts; attempt++ {
		client := redis.NewClient(opt)
		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		_ = client.Close()

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrNotReady, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, ErrNotReady
}

const keyPrefix = "authz:directives:"

// RedisCache is a DirectiveCache backed by redis. Directive sets are stored
// as space-joined directive tokens (directives never contain spaces), which
// keeps entries human-readable when debugging.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache wraps an existing client. A non-positive ttl disables
// expiry.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl < 0 {
		ttl = 0
	}
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, userID uuid.UUID) ([]scopes.Directive, bool, error) {
	raw, err := c.client.Get(ctx, keyPrefix+userID.String()).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Join(ErrCacheFailure, err)
	}

	directives, err := scopes.ParseAll(strings.Fields(raw))
	if err != nil {
		// A corrupt entry is treated as a miss so the caller re-resolves.
		return nil, false, nil
	}
	return directives, true, nil
}

func (c *RedisCache) Set(ctx context.Context, userID uuid.UUID, directives []scopes.Directive) error {
	value := strings.Join(scopes.Strings(directives), " ")
	if err := c.client.Set(ctx, keyPrefix+userID.String(), value, c.ttl).Err(); err != nil {
		return errors.Join(ErrCacheFailure, err)
	}
	return nil
}

func (c *RedisCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if err := c.client.Del(ctx, keyPrefix+userID.String()).Err(); err != nil {
		return errors.Join(ErrCacheFailure, err)
	}
	return nil
}

var _ DirectiveCache = (*RedisCache)(nil)
