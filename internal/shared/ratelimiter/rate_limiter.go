// Package ratelimiter は固定ウィンドウ方式のキー単位レートリミッターを提供します。
package ratelimiter

import (
	"context"
	"sync"
	"time"
)

// window はキーごとのカウンタです。
type window struct {
	count   int
	resetAt time.Time
}

// Limiter はプロセス内でキーごとの操作回数を制限します。
// interval ごとに最大 limit 回まで許可し、超過分は拒否します（待機はしません）。
// 複数インスタンスで共有する場合は RedisLimiter を使用してください。
type Limiter struct {
	limit    int           // ウィンドウあたりの上限
	interval time.Duration // ウィンドウの長さ
	now      func() time.Time

	mu      sync.Mutex
	windows map[string]*window
}

// NewLimiter は新しいLimiterのインスタンスを生成します。
func NewLimiter(limit int, interval time.Duration) *Limiter {
	return &Limiter{
		limit:    limit,
		interval: interval,
		now:      time.Now,
		windows:  make(map[string]*window),
	}
}

// Allow はkeyの操作を1回消費し、上限以内であればtrueを返します。
// limitが0以下の場合は常に許可します。
func (l *Limiter) Allow(_ context.Context, key string) (bool, error) {
	if l.limit <= 0 {
		return true, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	// interval を過ぎたらカウントリセット
	if !ok || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(l.interval)}
		l.windows[key] = w
		l.sweep(now)
	}

	w.count++
	return w.count <= l.limit, nil
}

// sweep は期限切れのウィンドウを削除します。呼び出し側でロックを保持していること。
func (l *Limiter) sweep(now time.Time) {
	for k, w := range l.windows {
		if !now.Before(w.resetAt) {
			delete(l.windows, k)
		}
	}
}
