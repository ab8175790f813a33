// Package ratelimiter は外部API呼び出しの頻度制限を提供します。
package ratelimiter

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// slowWait を超えて待機した場合にログを出力します。
const slowWait = 100 * time.Millisecond

// Limiter は、API呼び出しなどの操作の頻度を制限するインターフェースです。
type Limiter interface {
	Wait(ctx context.Context) error
}

// RateLimiter はトークンバケット方式で呼び出し頻度を制限します。
type RateLimiter struct {
	name    string
	limiter *rate.Limiter
}

// NewRateLimiter は新しいRateLimiterのインスタンスを生成します。
// perSecondが0以下の場合は無制限になります。burstは1未満の場合1として扱います。
func NewRateLimiter(name string, perSecond float64, burst int) *RateLimiter {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{name: name, limiter: rate.NewLimiter(limit, burst)}
}

// Wait はトークンが得られるまで待機します。ctxがキャンセルされた場合はエラーを返します。
// nilのRateLimiterは待機しません。
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if rl == nil {
		return nil
	}
	start := time.Now()
	if err := rl.limiter.Wait(ctx); err != nil {
		return err
	}
	if waited := time.Since(start); waited > slowWait {
		slog.Debug("rate limit hit", "limiter", rl.name, "waited", waited)
	}
	return nil
}
