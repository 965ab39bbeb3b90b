package middleware

import (
	"github.com/gin-gonic/gin"
)

// SecurityHeaders adds standard protective headers to every response
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Prevent clickjacking attacks
		c.Header("X-Frame-Options", "DENY")

		// Prevent MIME type sniffing
		c.Header("X-Content-Type-Options", "nosniff")

		// Enforce HTTPS
		c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")

		// Limit referrer leakage
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		c.Next()
	}
}
