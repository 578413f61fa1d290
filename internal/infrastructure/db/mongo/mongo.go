// Package mongo persists the service request audit trail. The boundary owns
// protocol generation; Mongo only records what this process created so that
// history reads survive the boundary's short retention window.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/skymovel/app-core/internal/pkg/config"
)

const connectTimeout = 10 * time.Second

// Connect opens the audit database and pings it. Callers treat failure as a
// degraded mode, not a fatal one: the service runs without the audit trail
// and history falls back to the boundary's projection alone.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}
