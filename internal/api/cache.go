package api

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// responseCache 抽象列表与设置响应的 Redis 缓存，测试中可替换。
type responseCache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// readCachedJSON 返回缓存的响应体；未命中或 Redis 故障时返回 false。
// 缓存层故障不升级为请求失败，直接回源数据库。
func readCachedJSON(ctx context.Context, cache responseCache, key string) ([]byte, bool) {
	if cache == nil {
		return nil, false
	}
	raw, err := cache.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return raw, true
}

// writeCachedJSON 尽力写入缓存，失败时静默忽略。
func writeCachedJSON(ctx context.Context, cache responseCache, key string, payload []byte, ttl time.Duration) {
	if cache == nil {
		return
	}
	_ = cache.Set(ctx, key, payload, ttl).Err()
}

// invalidateCache 删除指定缓存键。
func invalidateCache(ctx context.Context, cache responseCache, keys ...string) {
	if cache == nil || len(keys) == 0 {
		return
	}
	_ = cache.Del(ctx, keys...).Err()
}

type redisRateCounter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	ExpireNX(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// incrWithTTL 自增计数键并确保它带有过期时间。
// 每次调用都用 EXPIRE NX 补设 TTL：即便首次设置失败，
// 计数键也不会变成永不过期、把来源 IP 永久限流。
func incrWithTTL(ctx context.Context, client redisRateCounter, key string, ttl time.Duration) (int64, error) {
	count, err := client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if err := client.ExpireNX(ctx, key, ttl).Err(); err != nil {
		return count, fmt.Errorf("set ttl on %s: %w", key, err)
	}
	return count, nil
}
