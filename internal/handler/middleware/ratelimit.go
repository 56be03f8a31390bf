package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"shareit/internal/handler/httperr"
	"shareit/internal/pkg/config"
	"shareit/internal/pkg/errs"
)

var errRateLimited = errs.New("too many requests")

type rateLimiter struct {
	limiters sync.Map
	cfg      config.RateLimitConfig
}

// RateLimit throttles per actor: the sharer id when present, the client IP
// otherwise. Disabled config yields a pass-through handler.
func RateLimit(cfg config.RateLimitConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}

	l := &rateLimiter{cfg: cfg}
	return func(c *gin.Context) {
		key := c.GetHeader(HeaderSharerUserID)
		if key == "" {
			key = c.ClientIP()
		}
		if !l.getLimiter(key).Allow() {
			httperr.AbortWithError(c, http.StatusTooManyRequests, errRateLimited,
				"Too many requests", nil)
			return
		}
		c.Next()
	}
}

func (l *rateLimiter) getLimiter(key string) *rate.Limiter {
	if v, ok := l.limiters.Load(key); ok {
		if lim, ok := v.(*rate.Limiter); ok {
			return lim
		}
	}

	burst := l.cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	lim := rate.NewLimiter(rate.Limit(l.cfg.RPS), burst)
	actual, loaded := l.limiters.LoadOrStore(key, lim)
	if loaded {
		if actualLim, ok := actual.(*rate.Limiter); ok {
			return actualLim
		}
	}
	return lim
}
