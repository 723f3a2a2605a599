package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store 基于 Rdb 的键值存储，供 service 层通过接口依赖
type Store struct {
	client *redis.Client
}

// NewStore client 为空时使用全局 Rdb
func NewStore(client *redis.Client) *Store {
	if client == nil {
		client = Rdb
	}
	return &Store{client: client}
}

// SetWithExpiration 设置键值对并设置过期时间
func (s *Store) SetWithExpiration(ctx context.Context, key string, value string, expiration time.Duration) error {
	return s.client.Set(ctx, key, value, expiration).Err()
}

// GetValue 获取字符串类型的值，不存在时返回空串
func (s *Store) GetValue(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// GetAndDelete 读取后立即删除，用于一次性凭据
func (s *Store) GetAndDelete(ctx context.Context, key string) (string, error) {
	value, err := s.client.GetDel(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// DeleteKey 删除一个键
func (s *Store) DeleteKey(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
