package cache

import (
	"context"
	"sync"
	"time"
)

// Backend guarda respuestas serializadas indexadas por tags de invalidación.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration, tags []string) error
	Invalidate(ctx context.Context, tags ...string) error
}

type memItem struct {
	value     []byte
	expiresAt time.Time
}

// MemoryBackend es el backend in-process (dev / sin Redis).
type MemoryBackend struct {
	mu    sync.Mutex
	items map[string]memItem
	tags  map[string]map[string]struct{}
	now   func() time.Time
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		items: make(map[string]memItem),
		tags:  make(map[string]map[string]struct{}),
		now:   time.Now,
	}
}

func (b *MemoryBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	it, ok := b.items[key]
	if !ok {
		return nil, false, nil
	}
	if !it.expiresAt.IsZero() && !b.now().Before(it.expiresAt) {
		delete(b.items, key)
		return nil, false, nil
	}
	return it.value, true, nil
}

func (b *MemoryBackend) Set(_ context.Context, key string, value []byte, ttl time.Duration, tags []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	it := memItem{value: append([]byte(nil), value...)}
	if ttl > 0 {
		it.expiresAt = b.now().Add(ttl)
	}
	b.items[key] = it

	for _, t := range tags {
		keys, ok := b.tags[t]
		if !ok {
			keys = make(map[string]struct{})
			b.tags[t] = keys
		}
		keys[key] = struct{}{}
	}
	return nil
}

func (b *MemoryBackend) Invalidate(_ context.Context, tags ...string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, t := range tags {
		for key := range b.tags[t] {
			delete(b.items, key)
		}
		delete(b.tags, t)
	}
	return nil
}
