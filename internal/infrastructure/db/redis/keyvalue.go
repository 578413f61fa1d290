package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// KeyValue adapts a Redis client to the persisted key-value port used by the
// session store. Keys are namespaced with a fixed prefix so the session keys
// never collide with other tenants of the same Redis database.
type KeyValue struct {
	client *redis.Client
	prefix string
}

func NewKeyValue(client *redis.Client, prefix string) *KeyValue {
	return &KeyValue{client: client, prefix: prefix}
}

func (kv *KeyValue) key(name string) string {
	if kv.prefix == "" {
		return name
	}
	return kv.prefix + ":" + name
}

// Get returns the stored value, or "" when the key is absent.
func (kv *KeyValue) Get(ctx context.Context, name string) (string, error) {
	val, err := kv.client.Get(ctx, kv.key(name)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis get %s: %w", name, err)
	}
	return val, nil
}

func (kv *KeyValue) Set(ctx context.Context, name, value string) error {
	if err := kv.client.Set(ctx, kv.key(name), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", name, err)
	}
	return nil
}

// Delete removes the given keys. Missing keys are not an error.
func (kv *KeyValue) Delete(ctx context.Context, names ...string) error {
	if len(names) == 0 {
		return nil
	}
	keys := make([]string, len(names))
	for i, name := range names {
		keys[i] = kv.key(name)
	}
	if err := kv.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
