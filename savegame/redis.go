package savegame

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "overworld:save:"

// RedisStore keeps each slot as a JSON string under prefix+slot.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects and pings the server.
func NewRedisStore(redisURL, prefix string) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("savegame: parse redis url: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("savegame: connect redis: %w", err)
	}
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &RedisStore{client: client, prefix: prefix}, nil
}

func (r *RedisStore) key(slot string) string {
	return r.prefix + slot
}

func (r *RedisStore) Save(ctx context.Context, s Save) error {
	if err := checkSlot(s.Slot); err != nil {
		return err
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("savegame: marshal %q: %w", s.Slot, err)
	}
	if err := r.client.Set(ctx, r.key(s.Slot), data, 0).Err(); err != nil {
		return fmt.Errorf("savegame: save %q: %w", s.Slot, err)
	}
	return nil
}

func (r *RedisStore) Load(ctx context.Context, slot string) (Save, error) {
	if err := checkSlot(slot); err != nil {
		return Save{}, err
	}
	data, err := r.client.Get(ctx, r.key(slot)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Save{}, fmt.Errorf("%w: %q", ErrNotFound, slot)
	}
	if err != nil {
		return Save{}, fmt.Errorf("savegame: load %q: %w", slot, err)
	}
	var s Save
	if err := json.Unmarshal(data, &s); err != nil {
		return Save{}, fmt.Errorf("savegame: decode %q: %w", slot, err)
	}
	return s, nil
}

func (r *RedisStore) Delete(ctx context.Context, slot string) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	n, err := r.client.Del(ctx, r.key(slot)).Result()
	if err != nil {
		return fmt.Errorf("savegame: delete %q: %w", slot, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, slot)
	}
	return nil
}

func (r *RedisStore) List(ctx context.Context) ([]string, error) {
	var slots []string
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		slots = append(slots, strings.TrimPrefix(iter.Val(), r.prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("savegame: list: %w", err)
	}
	sort.Strings(slots)
	return slots, nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
