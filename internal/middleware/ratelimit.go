package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// clientLimiters keeps one token bucket per client IP. Buckets idle for
// longer than idleTTL are dropped on the next sweep.
type clientLimiters struct {
	mu      sync.Mutex
	rps     rate.Limit
	burst   int
	byIP    map[string]*clientLimiter
	swept   time.Time
	idleTTL time.Duration
}

type clientLimiter struct {
	lim  *rate.Limiter
	seen time.Time
}

func (c *clientLimiters) get(ip string, now time.Time) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	if now.Sub(c.swept) > c.idleTTL {
		for k, v := range c.byIP {
			if now.Sub(v.seen) > c.idleTTL {
				delete(c.byIP, k)
			}
		}
		c.swept = now
	}

	cl, ok := c.byIP[ip]
	if !ok {
		cl = &clientLimiter{lim: rate.NewLimiter(c.rps, c.burst)}
		c.byIP[ip] = cl
	}
	cl.seen = now
	return cl.lim
}

// RateLimit answers 429 once a client IP exceeds rps with the given burst.
// rps <= 0 turns it off.
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if burst < 1 {
		burst = 1
	}
	lims := &clientLimiters{
		rps:     rate.Limit(rps),
		burst:   burst,
		byIP:    make(map[string]*clientLimiter),
		idleTTL: 10 * time.Minute,
	}
	retry := strconv.Itoa(int(1/rps) + 1)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !lims.get(clientIP(r), time.Now()).Allow() {
				w.Header().Set("Retry-After", retry)
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
