package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"grocery.GO/core/cache"
	"grocery.GO/model/entity"
)

// Store persists identities by session id.
type Store interface {
	// Load returns nil, nil for an unknown or expired session.
	Load(ctx context.Context, id string) (*entity.Identity, error)
	Save(ctx context.Context, id string, ident entity.Identity, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

// NewStore picks Redis when a client is configured, memory otherwise.
func NewStore(client *redis.Client) Store {
	if client == nil {
		return NewMemoryStore()
	}
	return NewRedisStore(client, "grocery:session:")
}

type MemoryStore struct {
	c *cache.Cache
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{c: cache.NewCache()}
}

func (m *MemoryStore) Load(_ context.Context, id string) (*entity.Identity, error) {
	v, ok := m.c.Get(id)
	if !ok {
		return nil, nil
	}
	ident := v.(entity.Identity)
	return &ident, nil
}

func (m *MemoryStore) Save(_ context.Context, id string, ident entity.Identity, ttl time.Duration) error {
	m.c.Set(id, ident, ttl)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.c.Delete(id)
	return nil
}

// Purge drops expired sessions.
func (m *MemoryStore) Purge() int {
	return m.c.PurgeExpired()
}

type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (r *RedisStore) Load(ctx context.Context, id string) (*entity.Identity, error) {
	b, err := r.client.Get(ctx, r.prefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session load: %w", err)
	}
	var ident entity.Identity
	if err := json.Unmarshal(b, &ident); err != nil {
		return nil, fmt.Errorf("session decode: %w", err)
	}
	return &ident, nil
}

func (r *RedisStore) Save(ctx context.Context, id string, ident entity.Identity, ttl time.Duration) error {
	b, err := json.Marshal(ident)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.prefix+id, b, ttl).Err(); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, r.prefix+id).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}
