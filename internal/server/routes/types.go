package routes

import (
	"github.com/360ace-tech/contact-gateway/internal/api/handlers"
	"github.com/360ace-tech/contact-gateway/internal/api/middleware"
	"github.com/360ace-tech/contact-gateway/internal/ratelimit"
)

// Handlers contains all the route handlers
type Handlers struct {
	Contact *handlers.ContactHandler
	Health  *handlers.HealthHandler
}

// Middleware contains route-scoped middleware and shared limiters
type Middleware struct {
	Validation *middleware.ValidationMiddleware
	Throttle   *ratelimit.Limiter
}
