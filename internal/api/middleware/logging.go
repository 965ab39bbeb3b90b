package middleware

import (
	"time"

	"github.com/360ace-tech/contact-gateway/internal/logging"
	"github.com/360ace-tech/contact-gateway/internal/utils"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request: status, latency, client IP,
// method and path.
func RequestLogger() gin.HandlerFunc {
	logger := logging.GetLogger()

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		logger.Info("%d | %13v | %15s | %-7s %s",
			c.Writer.Status(),
			time.Since(start),
			utils.GetRealIP(c),
			method,
			path,
		)
	}
}
