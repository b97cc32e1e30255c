package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// 未初始化客户端时所有操作按缓存未命中处理，业务侧不感知

// SetWithExpiration 设置键值对并设置过期时间
func SetWithExpiration(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if Rdb == nil {
		return nil
	}
	return Rdb.Set(ctx, key, value, expiration).Err()
}

// GetValue 获取字符串类型的值
func GetValue(ctx context.Context, key string) (string, error) {
	if Rdb == nil {
		return "", nil
	}
	value, err := Rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// Incr 自增计数器，返回自增后的值
func Incr(ctx context.Context, key string) (int64, error) {
	if Rdb == nil {
		return 0, nil
	}
	return Rdb.Incr(ctx, key).Result()
}

// GetInt64 获取整型计数
func GetInt64(ctx context.Context, key string) (int64, error) {
	if Rdb == nil {
		return 0, nil
	}
	value, err := Rdb.Get(ctx, key).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	return value, nil
}

// HSet 设置哈希字段
func HSet(ctx context.Context, key, field string, value interface{}) error {
	if Rdb == nil {
		return nil
	}
	return Rdb.HSet(ctx, key, field, value).Err()
}

// HGetAll 获取整个哈希
func HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if Rdb == nil {
		return nil, nil
	}
	return Rdb.HGetAll(ctx, key).Result()
}

// HDel 删除哈希字段
func HDel(ctx context.Context, key string, fields ...string) error {
	if Rdb == nil {
		return nil
	}
	return Rdb.HDel(ctx, key, fields...).Err()
}

// DeleteKey 删除一个键
func DeleteKey(ctx context.Context, key string) error {
	if Rdb == nil {
		return nil
	}
	return Rdb.Del(ctx, key).Err()
}
