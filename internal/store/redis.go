package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis stores every record as a field of one hash, keyed by game id.
type Redis struct {
	client *redis.Client
	key    string
}

func NewRedis(ctx context.Context, addr string, db int, key string) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("[RedisStore] - failed to connect to Redis at %s: %w", addr, err)
	}
	return &Redis{client: client, key: key}, nil
}

func (r *Redis) Save(ctx context.Context, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("[RedisStore] - failed to serialize game: %w", err)
	}
	if err := r.client.HSet(ctx, r.key, rec.GameID, data).Err(); err != nil {
		return fmt.Errorf("[RedisStore] - failed to save game %s: %w", rec.GameID, err)
	}
	return nil
}

func (r *Redis) Load(ctx context.Context, gameID string) (Record, error) {
	data, err := r.client.HGet(ctx, r.key, gameID).Bytes()
	if errors.Is(err, redis.Nil) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("[RedisStore] - failed to get game %s: %w", gameID, err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("[RedisStore] - failed to deserialize game %s: %w", gameID, err)
	}
	return rec, nil
}

func (r *Redis) Delete(ctx context.Context, gameID string) error {
	if err := r.client.HDel(ctx, r.key, gameID).Err(); err != nil {
		return fmt.Errorf("[RedisStore] - failed to delete game %s: %w", gameID, err)
	}
	return nil
}

func (r *Redis) List(ctx context.Context) ([]Record, error) {
	values, err := r.client.HVals(ctx, r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("[RedisStore] - failed to list games: %w", err)
	}

	records := make([]Record, 0, len(values))
	for _, v := range values {
		var rec Record
		if err := json.Unmarshal([]byte(v), &rec); err != nil {
			return nil, fmt.Errorf("[RedisStore] - failed to deserialize game: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
