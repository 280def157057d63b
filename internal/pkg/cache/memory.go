package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

var _ Cache = &Memory{}

// Memory is an in-process cache. Values are kept as JSON so callers get a
// private copy on every Get, the same as with Redis.
type Memory struct {
	store *gocache.Cache
}

func NewMemory(ttl, cleanupInterval time.Duration) *Memory {
	return &Memory{store: gocache.New(ttl, cleanupInterval)}
}

func (m *Memory) Get(_ context.Context, key string, dest any) error {
	raw, ok := m.store.Get(key)
	if !ok {
		return ErrMiss
	}

	payload, ok := raw.([]byte)
	if !ok {
		return fmt.Errorf("unexpected cache value type %T for %s", raw, key)
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		return fmt.Errorf("unmarshal cache value for %s: %w", key, err)
	}
	return nil
}

func (m *Memory) Set(_ context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value for %s: %w", key, err)
	}

	m.store.SetDefault(key, payload)
	return nil
}

func (m *Memory) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		m.store.Delete(key)
	}
	return nil
}
