package routes

import (
	"github.com/360ace-tech/contact-gateway/internal/api/handlers"
	"github.com/360ace-tech/contact-gateway/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// SetupContactRoutes configures the contact form pipeline endpoint.
// Order matters: the throttle counts every attempt before any field is
// looked at, then validation gates the handler.
func SetupContactRoutes(router *gin.RouterGroup, contact *handlers.ContactHandler, m *Middleware) {
	router.POST("/contact",
		middleware.ClientThrottle(m.Throttle),
		m.Validation.ValidateContactRequest(),
		contact.Submit,
	)
}
