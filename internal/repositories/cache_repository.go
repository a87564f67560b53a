package repositories

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss возвращается любой реализацией кеша при отсутствии ключа.
var ErrCacheMiss = errors.New("ключ не найден в кеше")

type CacheRepositoryInterface interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, key ...string) error
}
