package service

import (
	"context"
	"time"
)

// KVStore 令牌吊销、OAuth state 与缓存使用的键值存储
type KVStore interface {
	GetValue(ctx context.Context, key string) (string, error)
	SetWithExpiration(ctx context.Context, key string, value string, expiration time.Duration) error
	GetAndDelete(ctx context.Context, key string) (string, error)
	DeleteKey(ctx context.Context, key string) error
}
