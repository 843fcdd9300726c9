package ratelimit

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Olori-Ebi/Eyi-media/internal/shared/httpx"
)

type Limiter struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Limiter { return &Limiter{rdb: rdb} }

func (l *Limiter) AllowSliding(ctx context.Context, key string, limit int64, window time.Duration) (bool, int64, error) {
	k := "rl:" + key
	pipe := l.rdb.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, window)
	_, err := pipe.Exec(ctx)
	if err != nil {
		return false, 0, err
	}
	n := incr.Val()
	return n <= limit, n, nil
}

// LimitHTTP gates a protected handler per authenticated user. A limiter
// outage fails open.
func (l *Limiter) LimitHTTP(limit int64, window time.Duration, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, err := httpx.UserFromCtx(r)
		if err != nil || uid == "" {
			httpx.WriteJSON(w, map[string]string{"msg": "Unauthorized"}, http.StatusUnauthorized)
			return
		}
		ok, n, e := l.AllowSliding(r.Context(), uid, limit, window)
		if e != nil {
			next.ServeHTTP(w, r)
			return
		}
		if !ok {
			httpx.WriteJSON(w, map[string]string{
				"msg": fmt.Sprintf("rate limit exceeded (count=%d, limit=%d)", n, limit),
			}, http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
