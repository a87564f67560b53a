package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type memoryCacheItem struct {
	value     string
	expiresAt time.Time
}

// MemoryCacheRepository — кеш в памяти процесса с фиксированным TTL.
// Часы инжектируются, чтобы тесты не зависели от настенного времени.
type MemoryCacheRepository struct {
	mu    sync.RWMutex
	items map[string]memoryCacheItem
	now   func() time.Time
}

func NewMemoryCacheRepository(now func() time.Time) *MemoryCacheRepository {
	if now == nil {
		now = time.Now
	}
	return &MemoryCacheRepository{
		items: make(map[string]memoryCacheItem),
		now:   now,
	}
}

func (r *MemoryCacheRepository) Get(ctx context.Context, key string) (string, error) {
	r.mu.RLock()
	item, ok := r.items[key]
	r.mu.RUnlock()

	if !ok || r.now().After(item.expiresAt) {
		return "", ErrCacheMiss
	}
	return item.value, nil
}

func (r *MemoryCacheRepository) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	s, ok := value.(string)
	if !ok {
		s = fmt.Sprintf("%v", value)
	}

	r.mu.Lock()
	r.items[key] = memoryCacheItem{value: s, expiresAt: r.now().Add(expiration)}
	r.mu.Unlock()
	return nil
}

func (r *MemoryCacheRepository) Del(ctx context.Context, keys ...string) error {
	r.mu.Lock()
	for _, k := range keys {
		delete(r.items, k)
	}
	r.mu.Unlock()
	return nil
}
