package ratelimiter

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/oops"
)

// RedisLimiter はRedisのINCRとEXPIREで複数インスタンス間で共有される固定ウィンドウを実装します。
type RedisLimiter struct {
	rdb       *redis.Client
	limit     int
	interval  time.Duration
	namespace string
}

// NewRedisLimiter は新しいRedisLimiterを生成します。namespaceが空の場合は"ratelimit"を使用します。
func NewRedisLimiter(rdb *redis.Client, limit int, interval time.Duration, namespace string) *RedisLimiter {
	if namespace == "" {
		namespace = "ratelimit"
	}
	return &RedisLimiter{rdb: rdb, limit: limit, interval: interval, namespace: namespace}
}

// Allow はkeyのカウンタを増やし、上限以内であればtrueを返します。
// ウィンドウの期限は期限未設定のカウンタにのみ設定されます。EXPIRE NXを使わないためRedis 7未満でも動作します。
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.limit <= 0 {
		return true, nil
	}

	k := l.namespace + ":" + key
	var (
		incr *redis.IntCmd
		ttl  *redis.DurationCmd
	)
	_, err := l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		ttl = pipe.TTL(ctx, k)
		return nil
	})
	if err != nil {
		return false, l.unavailable(err, k, "failed to increment rate limit counter")
	}

	// TTLが負の値なら期限なし。INCR直後の障害で期限が残らなかったカウンタもここで救済する
	if ttl.Val() < 0 {
		if err := l.rdb.Expire(ctx, k, l.interval).Err(); err != nil {
			return false, l.unavailable(err, k, "failed to set rate limit window")
		}
	}
	return incr.Val() <= int64(l.limit), nil
}

func (l *RedisLimiter) unavailable(err error, key, msg string) error {
	return oops.
		In("ratelimiter").
		Code("RATE_LIMIT_UNAVAILABLE").
		With("key", key).
		Wrapf(err, "%s", msg)
}
