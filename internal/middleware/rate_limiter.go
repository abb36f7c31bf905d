package middleware

import (
	"sync"
	"time"

	"bankledger/internal/errors"
	"bankledger/internal/handlers"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const (
	defaultRequestsPerSecond = 5
	defaultBurst             = 10

	sweepInterval = time.Minute
	clientTTL     = 3 * time.Minute
)

// limiterPool hands out one token bucket per client IP and evicts buckets
// idle longer than clientTTL so the map cannot grow without bound.
type limiterPool struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	rps     rate.Limit
	burst   int
}

type clientLimiter struct {
	bucket   *rate.Limiter
	lastSeen time.Time
}

func newLimiterPool(rps, burst int) *limiterPool {
	p := &limiterPool{
		clients: make(map[string]*clientLimiter),
		rps:     rate.Limit(rps),
		burst:   burst,
	}
	go p.sweep()
	return p
}

func (p *limiterPool) allow(ip string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	cl, ok := p.clients[ip]
	if !ok {
		cl = &clientLimiter{bucket: rate.NewLimiter(p.rps, p.burst)}
		p.clients[ip] = cl
	}
	cl.lastSeen = time.Now()
	return cl.bucket.Allow()
}

func (p *limiterPool) sweep() {
	for range time.Tick(sweepInterval) {
		p.mu.Lock()
		for ip, cl := range p.clients {
			if time.Since(cl.lastSeen) > clientTTL {
				delete(p.clients, ip)
			}
		}
		p.mu.Unlock()
	}
}

// RateLimiter throttles requests per client IP at the default limits.
func RateLimiter() echo.MiddlewareFunc {
	return RateLimiterWithConfig(defaultRequestsPerSecond, defaultBurst)
}

// RateLimiterWithConfig throttles requests per client IP at the given
// sustained rate and burst. Each middleware instance owns its own pool.
func RateLimiterWithConfig(rps int, burst int) echo.MiddlewareFunc {
	pool := newLimiterPool(rps, burst)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !pool.allow(getIP(c)) {
				return handlers.SendError(c, errors.ErrCodeRateLimitExceeded)
			}
			return next(c)
		}
	}
}

// getIP resolves the client address, trusting proxy headers when present.
func getIP(c echo.Context) string {
	if xff := c.Request().Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := c.Request().Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return c.RealIP()
}
