package server

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/360ace-tech/contact-gateway/internal/api/dto/common"
	"github.com/360ace-tech/contact-gateway/internal/api/dto/v1/contact"
	"github.com/360ace-tech/contact-gateway/internal/api/handlers"
	"github.com/360ace-tech/contact-gateway/internal/api/middleware"
	"github.com/360ace-tech/contact-gateway/internal/config"
	"github.com/360ace-tech/contact-gateway/internal/logging"
	"github.com/360ace-tech/contact-gateway/internal/ratelimit"
	"github.com/360ace-tech/contact-gateway/internal/server/routes"
	"github.com/360ace-tech/contact-gateway/internal/service"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// recoverHandler answers panics on the contact route in the form's own
// wire format so visitors see a retryable message instead of a bare 500
func recoverHandler(c *gin.Context, _ interface{}) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/contact") {
		c.AbortWithStatusJSON(http.StatusOK, contact.SubmitResponse{OK: false, Error: "Unexpected error."})
		return
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError,
		common.NewErrorResponse(common.ErrCodeInternalServer, "Internal server error", nil))
}

// Server is the contact gateway HTTP server
type Server struct {
	cfg      *config.Config
	router   *gin.Engine
	httpSrv  *http.Server
	throttle *ratelimit.Limiter
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Our own request logger replaces Gin's
	gin.DisableConsoleColor()
	gin.DefaultWriter = io.Discard

	router := gin.New()
	router.Use(gin.CustomRecovery(recoverHandler))

	return &Server{
		cfg:    cfg,
		router: router,
	}
}

// Init wires middleware, services, handlers and routes
func (s *Server) Init() {
	s.throttle = ratelimit.NewLimiter(&ratelimit.Config{
		Window:        s.cfg.ContactRateWindow(),
		Max:           s.cfg.ContactRateMax,
		SweepInterval: 5 * time.Minute,
	})

	spamSvc := service.NewSpamCheckService(s.cfg)
	captchaSvc := service.NewCaptchaService(s.cfg)
	mailerSvc := service.NewMailerService(s.cfg)

	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.RequestLogger())
	s.router.Use(middleware.CORS(s.cfg.AllowedOrigins, s.cfg.IsProduction()))
	s.router.Use(middleware.SecurityHeaders())
	s.router.Use(middleware.RateLimitMiddleware(middleware.RateLimitConfig{
		RPS:   s.cfg.GlobalRPS,
		Burst: s.cfg.GlobalBurst,
	}))

	h := &routes.Handlers{
		Contact: handlers.NewContactHandler(spamSvc, captchaSvc, mailerSvc),
		Health:  handlers.NewHealthHandler(captchaSvc, mailerSvc),
	}
	m := &routes.Middleware{
		Validation: middleware.NewValidationMiddleware(),
		Throttle:   s.throttle,
	}

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, common.NewErrorResponse(common.ErrCodeNotFound, "Resource not found", nil))
	})

	routes.Setup(s.router, h, m)
}

// Start runs the server until the context is cancelled, then drains
// in-flight requests and tears down the throttle sweeper
func (s *Server) Start(ctx context.Context) error {
	logger := logging.GetLogger()

	s.httpSrv = &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpSrv.ListenAndServe()
	}()

	logger.Info("Contact gateway listening on :%s", s.cfg.Port)

	select {
	case err := <-errCh:
		s.throttle.Stop()
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down...")
	s.throttle.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.httpSrv.Shutdown(shutdownCtx)
}
