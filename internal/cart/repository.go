package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// UpdateFunc receives the stored lines and returns the lines to store.
type UpdateFunc func(items []Item) ([]Item, error)

type Repository interface {
	Get(ctx context.Context, userID string) ([]Item, error)
	Update(ctx context.Context, userID string, fn UpdateFunc) ([]Item, error)
	Clear(ctx context.Context, userID string) error
}

const (
	cartTTL       = 30 * 24 * time.Hour
	maxTxAttempts = 5
	cartKeyPrefix = "cart:"
)

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

type RedisRepository struct {
	client *redis.Client
}

func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client}
}

func cartKey(userID string) string {
	return cartKeyPrefix + userID
}

func (r *RedisRepository) Get(ctx context.Context, userID string) ([]Item, error) {
	return load(ctx, r.client, cartKey(userID))
}

// Update runs fn inside WATCH/MULTI so concurrent writers for the same user
// never overwrite each other.
func (r *RedisRepository) Update(ctx context.Context, userID string, fn UpdateFunc) ([]Item, error) {
	key := cartKey(userID)
	var result []Item

	txf := func(tx *redis.Tx) error {
		items, err := load(ctx, tx, key)
		if err != nil {
			return err
		}

		next, err := fn(items)
		if err != nil {
			return err
		}

		data, err := json.Marshal(next)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if len(next) == 0 {
				pipe.Del(ctx, key)
				return nil
			}
			pipe.Set(ctx, key, data, cartTTL)
			return nil
		})
		if err == nil {
			result = next
		}
		return err
	}

	for i := 0; i < maxTxAttempts; i++ {
		err := r.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return result, nil
	}
	return nil, redis.TxFailedErr
}

func (r *RedisRepository) Clear(ctx context.Context, userID string) error {
	return r.client.Del(ctx, cartKey(userID)).Err()
}

func load(ctx context.Context, c getter, key string) ([]Item, error) {
	data, err := c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []Item{}, nil
	}
	if err != nil {
		return nil, err
	}

	items := []Item{}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}
