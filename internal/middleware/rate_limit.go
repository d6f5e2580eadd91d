package middleware

import (
	"net/http"
	"sync"
	"time"

	"dream-analyzer/backend/internal/common"
	"dream-analyzer/backend/internal/constants"
	"dream-analyzer/backend/internal/models/dtos"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long a client's bucket survives without requests
const limiterIdleTTL = 10 * time.Minute

// RateLimiter keeps one token bucket per client IP. Idle buckets expire.
type RateLimiter struct {
	limiters      *cache.Cache
	limitersMutex sync.Mutex

	rps   rate.Limit
	burst int

	whitelistedIPs map[string]bool
}

func NewRateLimiter(rps float64, burst int, whitelist ...string) *RateLimiter {
	return newRateLimiter(rps, burst, limiterIdleTTL, whitelist...)
}

func newRateLimiter(rps float64, burst int, idleTTL time.Duration, whitelist ...string) *RateLimiter {
	wl := make(map[string]bool, len(whitelist))
	for _, ip := range whitelist {
		wl[ip] = true
	}
	return &RateLimiter{
		limiters:       cache.New(idleTTL, 2*idleTTL),
		rps:            rate.Limit(rps),
		burst:          burst,
		whitelistedIPs: wl,
	}
}

func (rl *RateLimiter) getLimiter(ip string) *rate.Limiter {
	rl.limitersMutex.Lock()
	defer rl.limitersMutex.Unlock()

	limiter, ok := rl.cachedLimiter(ip)
	if !ok {
		limiter = rate.NewLimiter(rl.rps, rl.burst)
	}
	// Set on every hit so the expiry slides with activity
	rl.limiters.SetDefault(ip, limiter)
	return limiter
}

func (rl *RateLimiter) cachedLimiter(ip string) (*rate.Limiter, bool) {
	v, found := rl.limiters.Get(ip)
	if !found {
		return nil, false
	}
	limiter, ok := v.(*rate.Limiter)
	return limiter, ok
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := common.ClientIP(r)
		if rl.whitelistedIPs[ip] {
			next.ServeHTTP(w, r)
			return
		}

		if !rl.getLimiter(ip).Allow() {
			common.WriteJSON(w, http.StatusTooManyRequests, dtos.ErrorResponse{Error: constants.ErrMsgTooManyRequests})
			return
		}

		next.ServeHTTP(w, r)
	})
}
