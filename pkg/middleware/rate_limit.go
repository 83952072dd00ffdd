package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type RateLimiterConfig struct {
	RequestsPerSecond int
	Burst             int
	CleanupInterval   time.Duration
	TTL               time.Duration
}

// RateLimiter keeps one token bucket per client IP. Buckets of clients that
// went quiet for longer than TTL are dropped.
type RateLimiter struct {
	cfg      RateLimiterConfig
	mu       sync.Mutex
	visitors map[string]*visitor
	stop     chan struct{}
	once     sync.Once
}

func NewRateLimiter(cfg RateLimiterConfig) *RateLimiter {
	if cfg.CleanupInterval == 0 {
		cfg.CleanupInterval = time.Minute
	}
	if cfg.TTL == 0 {
		cfg.TTL = 3 * time.Minute
	}
	if cfg.Burst == 0 {
		cfg.Burst = cfg.RequestsPerSecond * 2
	}

	r := &RateLimiter{
		cfg:      cfg,
		visitors: make(map[string]*visitor),
		stop:     make(chan struct{}),
	}

	go r.cleanup()

	return r
}

// Stop ends the background cleanup
func (r *RateLimiter) Stop() {
	r.once.Do(func() { close(r.stop) })
}

func (r *RateLimiter) get(ip string) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rate.Limit(r.cfg.RequestsPerSecond), r.cfg.Burst)}
		r.visitors[ip] = v
	}

	v.lastSeen = time.Now()
	return v.limiter
}

func (r *RateLimiter) cleanup() {
	ticker := time.NewTicker(r.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			r.evict(time.Now())
		}
	}
}

func (r *RateLimiter) evict(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for ip, v := range r.visitors {
		if now.Sub(v.lastSeen) > r.cfg.TTL {
			delete(r.visitors, ip)
		}
	}
}

func (r *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !r.get(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":     "Too many requests",
				"requestID": c.GetString("requestID"),
			})
			return
		}

		c.Next()
	}
}
