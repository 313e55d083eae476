package ratelimit

import (
	"fmt"
	"math"

	"storefront-server/internal/apierrors"
	"storefront-server/internal/observability"

	"github.com/gin-gonic/gin"
)

// Middleware limits each session, or each client IP before a session is
// known. scope keeps separate budgets per route family.
func (s *Service) Middleware(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.Enabled() {
			c.Next()
			return
		}

		caller := c.GetString("Session-ID")
		if caller == "" {
			caller = "ip:" + c.ClientIP()
		}

		result := s.Check(c.Request.Context(), scope+":"+caller)

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", result.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", result.Remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", result.ResetAt.Unix()))

		if !result.Allowed {
			retrySeconds := int(math.Ceil(result.RetryAfter.Seconds()))
			c.Header("Retry-After", fmt.Sprintf("%d", retrySeconds))

			ctx := observability.WithFields(c.Request.Context(),
				observability.Field{Key: "rate_limit_scope", Value: scope},
				observability.Field{Key: "retry_after_seconds", Value: retrySeconds},
			)
			s.logger.Warn(ctx, "rate limit exceeded")

			apierrors.RespondWithError(c, apierrors.TooManyRequests(
				fmt.Sprintf("Too many requests. Try again in %d seconds.", retrySeconds)))
			return
		}

		c.Next()
	}
}
