package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultRequestsPerMin = 100
	visitorIdleAfter      = 10 * time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// visitorStore keeps one token bucket per client IP and forgets idle ones.
type visitorStore struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	perMinute int
	lastSweep time.Time
	now       func() time.Time
}

func newVisitorStore(perMinute int) *visitorStore {
	if perMinute <= 0 {
		perMinute = defaultRequestsPerMin
	}
	return &visitorStore{
		visitors:  make(map[string]*visitor),
		perMinute: perMinute,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (s *visitorStore) limiterFor(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) > visitorIdleAfter {
		for k, v := range s.visitors {
			if now.Sub(v.lastSeen) > visitorIdleAfter {
				delete(s.visitors, k)
			}
		}
		s.lastSweep = now
	}

	v, ok := s.visitors[ip]
	if !ok {
		// perMinute tokens refilled evenly, a full minute available as burst.
		v = &visitor{limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(s.perMinute)), s.perMinute)}
		s.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

func (s *visitorStore) retryAfter() int {
	secs := 60 / s.perMinute
	if secs < 1 {
		return 1
	}
	return secs
}

// RateLimitMiddleware limits requests per client IP. Pre-flight requests are not counted.
func RateLimitMiddleware(perMinute int) gin.HandlerFunc {
	store := newVisitorStore(perMinute)
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}
		ip := getClientIP(c)
		if !store.limiterFor(ip).Allow() {
			zap.L().Warn("Rate limit exceeded", zap.String("ip", ip), zap.String("path", c.Request.URL.Path))
			c.Header("Retry-After", strconv.Itoa(store.retryAfter()))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "For mange forespørgsler. Prøv igen om lidt."})
			return
		}
		c.Next()
	}
}
