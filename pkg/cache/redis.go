package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"rental-booking/internal/data/entity"
	"rental-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionCache keeps recently validated sessions so the auth middleware does
// not hit postgres on every request.
type SessionCache interface {
	Get(ctx context.Context, token string) (*entity.Session, error)
	Set(ctx context.Context, session *entity.Session) error
	Delete(ctx context.Context, token string) error
}

type cachedSession struct {
	UserID    uuid.UUID   `json:"user_id"`
	Token     uuid.UUID   `json:"token"`
	Role      entity.Role `json:"role"`
	ExpiresAt time.Time   `json:"expires_at"`
}

type redisSessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

func ConnectRedis(ctx context.Context, config utils.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func NewSessionCache(client *redis.Client, ttl time.Duration) SessionCache {
	return &redisSessionCache{client: client, ttl: ttl}
}

func sessionKey(token string) string {
	return "session:" + token
}

// Get returns nil, nil on a cache miss.
func (c *redisSessionCache) Get(ctx context.Context, token string) (*entity.Session, error) {
	raw, err := c.client.Get(ctx, sessionKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cached session: %w", err)
	}

	var cs cachedSession
	if err := json.Unmarshal(raw, &cs); err != nil {
		return nil, fmt.Errorf("decode cached session: %w", err)
	}
	if time.Now().After(cs.ExpiresAt) {
		return nil, nil
	}

	return &entity.Session{
		UserID:    cs.UserID,
		Token:     cs.Token,
		Role:      cs.Role,
		ExpiresAt: cs.ExpiresAt,
	}, nil
}

func (c *redisSessionCache) Set(ctx context.Context, session *entity.Session) error {
	ttl := c.ttl
	if remaining := time.Until(session.ExpiresAt); remaining < ttl {
		ttl = remaining
	}
	if ttl <= 0 {
		return nil
	}

	raw, err := json.Marshal(cachedSession{
		UserID:    session.UserID,
		Token:     session.Token,
		Role:      session.Role,
		ExpiresAt: session.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if err := c.client.Set(ctx, sessionKey(session.Token.String()), raw, ttl).Err(); err != nil {
		return fmt.Errorf("cache session: %w", err)
	}
	return nil
}

func (c *redisSessionCache) Delete(ctx context.Context, token string) error {
	if err := c.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("evict session: %w", err)
	}
	return nil
}

type noopSessionCache struct{}

// NewNoopSessionCache is used when no redis address is configured.
func NewNoopSessionCache() SessionCache { return noopSessionCache{} }

func (noopSessionCache) Get(context.Context, string) (*entity.Session, error) { return nil, nil }
func (noopSessionCache) Set(context.Context, *entity.Session) error          { return nil }
func (noopSessionCache) Delete(context.Context, string) error                { return nil }
