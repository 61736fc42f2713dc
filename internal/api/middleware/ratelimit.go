package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chainpass/ticketing/internal/adapter"
	apierrors "github.com/chainpass/ticketing/internal/api/shared/errors"
	"github.com/chainpass/ticketing/internal/logger"
)

const RATE_LIMIT_REMAINING_HEADER = "X-RateLimit-Remaining"

// RateLimitConfig bounds requests per client IP
type RateLimitConfig struct {
	// Scope separates buckets of differently limited route groups
	Scope             string
	RequestsPerMinute int
	Burst             int
}

// RateLimit returns a gin middleware limiting requests per client IP.
// A nil limiter or a non positive rate disables it. Limiter failures let the request through.
func RateLimit(limiter adapter.RedisRateLimiter, cfg RateLimitConfig) gin.HandlerFunc {
	if limiter == nil || cfg.RequestsPerMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		key := "ratelimit:" + cfg.Scope + ":" + c.ClientIP()

		decision, err := limiter.AllowPerMinute(c.Request.Context(), key, cfg.RequestsPerMinute, cfg.Burst)
		if err != nil {
			logger.WarnCtx(c.Request.Context(), "Rate limiter unavailable, allowing request",
				zap.Error(err),
				zap.String("scope", cfg.Scope),
			)
			c.Next()
			return
		}

		c.Header(RATE_LIMIT_REMAINING_HEADER, strconv.Itoa(decision.Remaining))
		if !decision.Allowed {
			retryAfter := int(math.Ceil(decision.RetryAfter.Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierrors.NewRateLimitedError("Too many requests"))
			return
		}

		c.Next()
	}
}
