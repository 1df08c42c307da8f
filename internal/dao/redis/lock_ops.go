// Package redis 提供 Redis 缓存操作的封装
// 本文件包含基于 SETNX 的分布式锁操作，供定时清扫防止多实例并发执行
package redis

import (
	"context"
	"time"

	"homeswap_server/pkg/errorx"
)

// TryLock 尝试获取分布式锁
// 获取成功返回 true；锁已被占用返回 false 且不报错
// key: 锁键名
// ttl: 锁自动过期时间，持有者异常退出后由 Redis 回收
func TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := redisClient.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, errorx.Wrapf(err, errorx.CodeCacheError, "redis setnx key %s", key)
	}
	return ok, nil
}

// Unlock 释放分布式锁
func Unlock(ctx context.Context, key string) error {
	return DelKey(ctx, key)
}

// TryLock Store 方法形式的 TryLock
func (s *Store) TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return TryLock(ctx, key, ttl)
}

// Unlock Store 方法形式的 Unlock
func (s *Store) Unlock(ctx context.Context, key string) error {
	return Unlock(ctx, key)
}
