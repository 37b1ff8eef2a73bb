package lock

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrLockTimeout = errors.New("获取锁超时")

// 只删除仍然由当前持有者持有的键，避免误删过期后被他人重新获取的锁
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisLocker struct {
	rdb        *redis.Client
	expiration time.Duration
	wait       time.Duration
	retry      time.Duration
}

func NewRedisLocker(rdb *redis.Client, expiration, wait time.Duration) *RedisLocker {
	return &RedisLocker{
		rdb:        rdb,
		expiration: expiration,
		wait:       wait,
		retry:      20 * time.Millisecond,
	}
}

// Lock 按字典序依次获取所有键上的锁，任意一个获取失败都会释放已获取的锁
func (l *RedisLocker) Lock(ctx context.Context, keys ...string) (func(), error) {
	sorted := slices.Clone(keys)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	ctx, cancel := context.WithTimeout(ctx, l.wait)
	defer cancel()

	token := uuid.NewString()
	acquired := make([]string, 0, len(sorted))

	for _, key := range sorted {
		if err := l.acquire(ctx, key, token); err != nil {
			l.release(acquired, token)
			return nil, err
		}
		acquired = append(acquired, key)
	}

	return func() { l.release(acquired, token) }, nil
}

func (l *RedisLocker) acquire(ctx context.Context, key, token string) error {
	ticker := time.NewTicker(l.retry)
	defer ticker.Stop()

	for {
		ok, err := l.rdb.SetNX(ctx, key, token, l.expiration).Result()
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return ErrLockTimeout
			}
			return err
		}
		if ok {
			return nil
		}

		select {
		case <-ctx.Done():
			return ErrLockTimeout
		case <-ticker.C:
		}
	}
}

func (l *RedisLocker) release(keys []string, token string) {
	// 调用方的 ctx 可能已经取消，释放锁使用独立的 ctx
	ctx, cancel := context.WithTimeout(context.Background(), l.wait)
	defer cancel()

	for _, key := range keys {
		_ = unlockScript.Run(ctx, l.rdb, []string{key}, token).Err()
	}
}
