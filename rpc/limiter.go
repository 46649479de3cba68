package rpc

import (
	"net"
	"net/http"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// ClientTTL is how long the bucket of an idle client is kept.
const ClientTTL = 10 * time.Minute

// Limiter keeps one token bucket per client address. Buckets of clients that stay idle for the
// ttl are dropped.
type Limiter struct {
	limiters *gocache.Cache
	rate     rate.Limit
	burst    int
}

func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	return NewLimiterWithTTL(requestsPerSecond, burst, ClientTTL)
}

func NewLimiterWithTTL(requestsPerSecond float64, burst int, ttl time.Duration) *Limiter {
	if burst <= 0 {
		burst = 5
	}
	r := rate.Limit(requestsPerSecond)
	if requestsPerSecond <= 0 {
		r = rate.Inf
	}
	return &Limiter{
		limiters: gocache.New(ttl, 2*ttl),
		rate:     r,
		burst:    burst,
	}
}

func (l *Limiter) Allow(client string) bool {
	return l.get(client).Allow()
}

func (l *Limiter) get(client string) *rate.Limiter {
	if cached, found := l.limiters.Get(client); found {
		limiter := cached.(*rate.Limiter)
		l.limiters.SetDefault(client, limiter)
		return limiter
	}

	limiter := rate.NewLimiter(l.rate, l.burst)
	if err := l.limiters.Add(client, limiter, gocache.DefaultExpiration); err != nil {
		// lost the race against another request of the same client
		if cached, found := l.limiters.Get(client); found {
			return cached.(*rate.Limiter)
		}
	}

	return limiter
}

func (l *Limiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(clientIP(r)) {
			writeError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
