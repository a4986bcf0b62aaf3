package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const visitorIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter keeps one token bucket per client IP.
type IPRateLimiter struct {
	limit rate.Limit
	burst int

	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
	now       func() time.Time
}

// NewIPRateLimiter allows perMinute requests per IP with a burst of the same size.
// A non-positive perMinute disables limiting.
func NewIPRateLimiter(perMinute int) *IPRateLimiter {
	l := &IPRateLimiter{
		visitors: make(map[string]*visitor),
		now:      time.Now,
	}
	if perMinute <= 0 {
		l.limit = rate.Inf
		return l
	}
	l.limit = rate.Every(time.Minute / time.Duration(perMinute))
	l.burst = perMinute
	return l
}

func (l *IPRateLimiter) Allow(ip string) bool {
	if l.limit == rate.Inf {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// sweep drops idle visitors at most once per TTL. Caller holds mu.
func (l *IPRateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < visitorIdleTTL {
		return
	}
	for ip, v := range l.visitors {
		if now.Sub(v.lastSeen) > visitorIdleTTL {
			delete(l.visitors, ip)
		}
	}
	l.lastSweep = now
}

// GinMiddleware answers 429 once an IP exhausts its bucket.
func (l *IPRateLimiter) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}
		if !l.Allow(ip) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{
				Error:   CodeRateLimited,
				Message: "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}
