package http

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/vegist/backend/internal/domain"
	"github.com/vegist/backend/internal/infrastructure/logger"
)

const requestIDHeader = "X-Request-Id"

// CORSMiddleware handles CORS for the storefront origins
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if allowed, wildcard := isAllowedOrigin(origin, allowedOrigins); allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Add("Vary", "Origin")
			// credentials only for origins listed exactly
			if !wildcard {
				c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			}
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With, X-Request-Id")
			c.Writer.Header().Set("Access-Control-Expose-Headers", requestIDHeader)
			c.Writer.Header().Set("Access-Control-Max-Age", "3600")
		}

		// Handle preflight requests
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// isAllowedOrigin checks if the origin is in the allowed list.
// An entry ending in "*" matches any origin with that prefix; wildcard reports
// that no exact entry matched.
func isAllowedOrigin(origin string, allowedOrigins []string) (allowed, wildcard bool) {
	if origin == "" {
		return false, false
	}
	for _, entry := range allowedOrigins {
		if origin == entry {
			return true, false
		}
	}
	for _, entry := range allowedOrigins {
		if prefix, ok := strings.CutSuffix(entry, "*"); ok && strings.HasPrefix(origin, prefix) {
			return true, true
		}
	}
	return false, false
}

// RequestIDMiddleware echoes the caller's X-Request-Id or issues a new one and
// attaches it to the request context logger
func RequestIDMiddleware(logg *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.Request.Header.Get(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}

		c.Writer.Header().Set(requestIDHeader, reqID)
		c.Set("request_id", reqID)
		c.Request = c.Request.WithContext(logg.WithRequestID(c.Request.Context(), reqID))

		c.Next()
	}
}

// LoggerMiddleware logs one line per completed request
func LoggerMiddleware(logg *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		ctx := logg.WithFields(c.Request.Context(), map[string]any{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		})
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		logg.Info(ctx, "request.complete", map[string]any{
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"client_ip":   c.ClientIP(),
		})
	}
}

// RecoveryMiddleware turns panics into a 500 error envelope
func RecoveryMiddleware(logg *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logg.Error(c.Request.Context(), "panic.recovered", fmt.Errorf("panic: %v", recovered))
		abortWithError(c, http.StatusInternalServerError, "internal_error", "internal server error")
	})
}

// ipLimiter hands out one token bucket per client IP. Buckets idle for longer than
// idleTTL are dropped on the next sweep.
type ipLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPLimiter(perMinute int) *ipLimiter {
	return &ipLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
		idleTTL:  3 * time.Minute,
		now:      time.Now,
	}
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > l.idleTTL {
		for key, v := range l.visitors {
			if now.Sub(v.lastSeen) > l.idleTTL {
				delete(l.visitors, key)
			}
		}
		l.lastSweep = now
	}

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// RateLimitMiddleware allows each client IP perMinute requests per minute with a
// burst of the same size. Zero disables limiting.
func RateLimitMiddleware(perMinute int, logg *logger.Logger) gin.HandlerFunc {
	if perMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	limiter := newIPLimiter(perMinute)
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !limiter.allow(ip) {
			logg.Warn(c.Request.Context(), "request.rate_limited", map[string]any{"client_ip": ip})
			c.Header("Retry-After", "60")
			abortWithError(c, http.StatusTooManyRequests, "rate_limited", domain.ErrRateLimited.Error())
			return
		}
		c.Next()
	}
}
