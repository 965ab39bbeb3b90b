package routes

import (
	"github.com/360ace-tech/contact-gateway/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// SetupHealthRoutes configures the liveness endpoint
func SetupHealthRoutes(router *gin.Engine, health *handlers.HealthHandler) {
	router.GET("/health", health.Check)
}
