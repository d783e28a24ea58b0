package cache

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

// Redis backs the Cache with a shared Redis instance. Group membership
// lives in a set per group so Invalidate can drop every registered key
// without scanning the keyspace.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis wraps an existing client. prefix namespaces keys so several
// deployments can share one instance.
func NewRedis(client *redis.Client, prefix string) *Redis {
	if prefix == "" {
		prefix = "portal"
	}
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) key(k string) string   { return r.prefix + ":cache:" + k }
func (r *Redis) group(g string) string { return r.prefix + ":group:" + g }

func (r *Redis) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value interface{}, groups ...string) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.key(key), data, DefaultTTL)
	for _, g := range groups {
		pipe.SAdd(ctx, r.group(g), r.key(key))
		// group sets outlive their members slightly; a stale member is
		// just a DEL of a missing key on invalidation
		pipe.Expire(ctx, r.group(g), 2*DefaultTTL)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (r *Redis) Invalidate(ctx context.Context, groups ...string) error {
	for _, g := range groups {
		keys, err := r.client.SMembers(ctx, r.group(g)).Result()
		if err != nil && err != redis.Nil {
			return err
		}
		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if err := r.client.Del(ctx, r.group(g)).Err(); err != nil {
			return err
		}
	}
	return nil
}
