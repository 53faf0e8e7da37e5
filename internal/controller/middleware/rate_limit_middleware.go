package middleware

import (
	"net/http"

	"golang.org/x/time/rate"
)

type RateLimitMiddleware struct {
	limiter *rate.Limiter
}

func (rlm *RateLimitMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rlm.limiter.Allow() {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// rpsが0以下なら制限しない
func NewRateLimitMiddleware(rps float64, burst int) *RateLimitMiddleware {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &RateLimitMiddleware{
		limiter: rate.NewLimiter(limit, burst),
	}
}
