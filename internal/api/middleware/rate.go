package middleware

import (
	"net/http"
	"time"

	"github.com/360ace-tech/contact-gateway/internal/api/dto/common"
	"github.com/360ace-tech/contact-gateway/internal/api/dto/v1/contact"
	"github.com/360ace-tech/contact-gateway/internal/ratelimit"
	"github.com/360ace-tech/contact-gateway/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines configuration for the global rate limiter
type RateLimitConfig struct {
	// Requests per second
	RPS int
	// Burst size (number of requests that can be made in a single burst)
	Burst int
}

// RateLimitMiddleware is a server-wide token-bucket backstop shared by
// all clients. Per-client fairness on the contact endpoint is handled
// by ClientThrottle.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(config.RPS), config.Burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, common.NewErrorResponse(
				common.ErrCodeTooManyRequests,
				"Rate limit exceeded. Please try again later.",
				nil,
			))
			c.Abort()
			return
		}
		c.Next()
	}
}

// ClientThrottle limits contact submissions per client in fixed time
// windows. The key derives from the forwarded client IP. Denials answer
// in the form's wire format with a generic message.
func ClientThrottle(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := utils.GetRealIP(c)
		if key == "" {
			key = "unknown"
		}

		if !limiter.Allow(key, time.Now()) {
			c.JSON(http.StatusTooManyRequests, contact.SubmitResponse{
				OK:    false,
				Error: "Too many requests. Please try again later.",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
