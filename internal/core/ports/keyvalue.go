package ports

import "context"

// KeyValue is the durable string-keyed storage behind the session store.
// Get returns ("", nil) when the key is absent; callers treat empty as
// missing, mirroring the null-on-miss contract of the mobile storage layer.
type KeyValue interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}
