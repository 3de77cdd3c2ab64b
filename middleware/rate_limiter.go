package middleware

import (
	"net/http"
	"sync"
	"time"

	"reviewdesk/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	// CodeRateLimited is the error code of throttled requests.
	CodeRateLimited = "rate_limited"

	defaultPerMin  = 200
	idleLimiterTTL = 10 * time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiter hands out one token bucket per client IP. Buckets idle for idleLimiterTTL
// are dropped on the next sweep.
type ipLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	every     rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

func newIPLimiter(perMin int) *ipLimiter {
	if perMin <= 0 {
		perMin = defaultPerMin
	}
	return &ipLimiter{
		visitors: make(map[string]*visitor),
		every:    rate.Every(time.Minute / time.Duration(perMin)),
		burst:    perMin,
		now:      time.Now,
	}
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > idleLimiterTTL {
		for key, v := range l.visitors {
			if now.Sub(v.lastSeen) > idleLimiterTTL {
				delete(l.visitors, key)
			}
		}
		l.lastSweep = now
	}

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.every, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// RateLimitMiddleware allows perMin requests per minute per client IP, bursting up to a
// full minute's budget.
func RateLimitMiddleware(perMin int) gin.HandlerFunc {
	limiter := newIPLimiter(perMin)
	return func(c *gin.Context) {
		ip := getClientIP(c)
		if !limiter.allow(ip) {
			utils.AbortWithError(c, http.StatusTooManyRequests, utils.ErrorResponse{
				Code:    CodeRateLimited,
				Message: "Rate limit exceeded. Try again later.",
				Details: ip,
			})
			return
		}
		c.Next()
	}
}
