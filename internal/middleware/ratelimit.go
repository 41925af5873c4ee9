package middleware

import (
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

// UserRateLimiter limits requests per authenticated user using a token bucket per user
type UserRateLimiter struct {
	users map[int64]*rate.Limiter
	mu    sync.RWMutex
	limit rate.Limit
	burst int
}

// NewUserRateLimiter allows perMinute requests per user, with bursts up to burst
func NewUserRateLimiter(perMinute, burst int) *UserRateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &UserRateLimiter{
		users: make(map[int64]*rate.Limiter),
		limit: rate.Limit(float64(perMinute) / 60.0),
		burst: burst,
	}
}

func (l *UserRateLimiter) getLimiter(userID int64) *rate.Limiter {
	l.mu.RLock()
	lim, ok := l.users[userID]
	l.mu.RUnlock()
	if ok {
		return lim
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if lim, ok = l.users[userID]; ok {
		return lim
	}
	lim = rate.NewLimiter(l.limit, l.burst)
	l.users[userID] = lim
	return lim
}

// Allow reports whether the user may make one more request now
func (l *UserRateLimiter) Allow(userID int64) bool {
	return l.getLimiter(userID).Allow()
}

// Middleware returns 429 when the user exceeds the rate. Must run after AuthMiddleware.
func (l *UserRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserID(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthenticated")
			return
		}
		if !l.Allow(userID) {
			writeError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}
