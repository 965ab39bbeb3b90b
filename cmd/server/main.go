package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/360ace-tech/contact-gateway/internal/config"
	"github.com/360ace-tech/contact-gateway/internal/logging"
	"github.com/360ace-tech/contact-gateway/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logging.Configure(&logging.Config{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     7,
	})
	logger := logging.GetLogger()
	defer logger.Close()

	logger.Info("Starting contact gateway in %s mode", cfg.Environment)
	if cfg.SendgridAPIKey == "" {
		logger.Warn("SENDGRID_API_KEY not set; submissions will be answered with a service error")
	}

	srv := server.NewServer(cfg)
	srv.Init()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server exited: %v", err)
		os.Exit(1)
	}

	logger.Info("Server stopped")
}
