package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const maxTxRetries = 10

// Redis keeps slots as plain string values. Update uses WATCH/MULTI, so the
// callback may run more than once and must not have side effects of its own.
type Redis struct {
	client    *redis.Client
	namespace string
}

// NewRedis wraps a connected client. Every slot key is prefixed with namespace.
func NewRedis(client *redis.Client, namespace string) *Redis {
	return &Redis{client: client, namespace: namespace}
}

func (r *Redis) key(k string) string {
	if r.namespace == "" {
		return k
	}
	return r.namespace + ":" + k
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get slot %s: %w", key, err)
	}
	return v, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set slot %s: %w", key, err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete slot %s: %w", key, err)
	}
	return nil
}

func (r *Redis) Update(ctx context.Context, keys []string, fn func(tx Txn) error) error {
	keys = sortedKeys(keys)
	fullKeys := make([]string, len(keys))
	for i, k := range keys {
		fullKeys[i] = r.key(k)
	}

	txf := func(rtx *redis.Tx) error {
		values, err := rtx.MGet(ctx, fullKeys...).Result()
		if err != nil {
			return fmt.Errorf("failed to read slots: %w", err)
		}

		current := make(map[string][]byte, len(keys))
		for i, v := range values {
			if s, ok := v.(string); ok {
				current[keys[i]] = []byte(s)
			}
		}

		staged := newStagedTxn(keys, current)
		if err := fn(staged); err != nil {
			return err
		}
		if len(staged.writes) == 0 && len(staged.deletes) == 0 {
			return nil
		}

		_, err = rtx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for k, v := range staged.writes {
				pipe.Set(ctx, r.key(k), v, 0)
			}
			for k := range staged.deletes {
				pipe.Del(ctx, r.key(k))
			}
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err := r.client.Watch(ctx, txf, fullKeys...)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return ErrConflict
}

// Close is a no-op; the connection belongs to whoever passed it in.
func (r *Redis) Close() error {
	return nil
}
