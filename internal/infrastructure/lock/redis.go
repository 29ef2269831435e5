package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/lucasAG-UNQ/FutbolApi/internal/platform/logging"
	"github.com/lucasAG-UNQ/FutbolApi/internal/usecase"
)

const (
	defaultTTL       = 30 * time.Second
	defaultPollEvery = 100 * time.Millisecond
	keyPrefix        = "futbol:lock:"
)

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

type RedisConfig struct {
	TTL       time.Duration
	PollEvery time.Duration
}

// Redis serializes work per key across instances with SET NX PX and a token
// checked release. When redis is unreachable the work runs unlocked.
type Redis struct {
	client    redis.UniversalClient
	ttl       time.Duration
	pollEvery time.Duration
	logger    *logging.Logger
}

var _ usecase.RefreshLocker = (*Redis)(nil)

func NewRedis(client redis.UniversalClient, cfg RedisConfig, logger *logging.Logger) *Redis {
	if logger == nil {
		logger = logging.Default()
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	poll := cfg.PollEvery
	if poll <= 0 {
		poll = defaultPollEvery
	}
	return &Redis{client: client, ttl: ttl, pollEvery: poll, logger: logger}
}

// NewRedisClient parses a redis:// URL and checks the connection.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opt)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (r *Redis) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	redisKey := keyPrefix + key
	token := uuid.NewString()

	acquired, err := r.acquire(ctx, redisKey, token)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		r.logger.WarnContext(ctx, "refresh lock unavailable, running unlocked", "key", key, "error", err)
		return fn(ctx)
	}
	if !acquired {
		return ctx.Err()
	}

	defer func() {
		// Release even when the request context is already cancelled.
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		defer cancel()
		if err := releaseScript.Run(releaseCtx, r.client, []string{redisKey}, token).Err(); err != nil {
			r.logger.WarnContext(ctx, "release refresh lock failed", "key", key, "error", err)
		}
	}()

	return fn(ctx)
}

func (r *Redis) acquire(ctx context.Context, key, token string) (bool, error) {
	ticker := time.NewTicker(r.pollEvery)
	defer ticker.Stop()

	for {
		ok, err := r.client.SetNX(ctx, key, token, r.ttl).Result()
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}

		select {
		case <-ctx.Done():
			return false, nil
		case <-ticker.C:
		}
	}
}
