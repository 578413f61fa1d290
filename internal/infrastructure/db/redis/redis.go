// Package redis backs the persisted session keys (access token, refresh
// token, customer id, onboarding and biometric flags) with a key-value
// adapter over a single Redis database.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/skymovel/app-core/internal/pkg/config"
)

// Session reads sit on the login and splash paths, so connectivity is
// verified up front rather than on first use.
const pingTimeout = 5 * time.Second

// Connect opens the client holding the session keys and pings it before the
// router starts accepting logins. A dead Redis means no session can be
// persisted or restored, so the caller treats failure as fatal.
func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
