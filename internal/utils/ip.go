package utils

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// GetRealIP extracts the client IP, respecting reverse proxies.
// The throttle keys on this value, so it must be stable per client.
func GetRealIP(c *gin.Context) string {
	// X-Real-IP is set by the fronting proxy when present
	if ip := c.GetHeader("X-Real-IP"); ip != "" {
		return ip
	}

	// X-Forwarded-For can be a comma-separated list: client, proxy1, ...
	// The leftmost entry is the originating client.
	if forwardedFor := c.GetHeader("X-Forwarded-For"); forwardedFor != "" {
		ips := strings.Split(forwardedFor, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	return c.ClientIP()
}
