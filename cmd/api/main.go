package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/loranstudio/quotewidget-engine/docs"
	"github.com/loranstudio/quotewidget-engine/internal/config"
	applog "github.com/loranstudio/quotewidget-engine/internal/logger"
)

// @title Quote Widget Engine API
// @version 1.0
// @description Personal quote collection with a daily widget resolver.
// @BasePath /api/v1
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Critical: %v", err)
	}

	logger, err := applog.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Critical: %v", err)
	}
	defer logger.Sync()

	if cfg.AppEnv == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := newApplication(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("startup failed", zap.Error(err))
	}
	defer app.Close()

	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     app.router,
		ReadTimeout: 10 * time.Second,
		// No WriteTimeout: the widget event stream stays open.
		IdleTimeout: 120 * time.Second,
		// Request contexts end with ctx, which closes open event streams.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go func() {
		logger.Info("quote widget engine listening", zap.String("addr", "http://localhost:"+cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("stop signal received, shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("forced shutdown", zap.Error(err))
	}

	select {
	case <-app.worker.Done():
	case <-shutdownCtx.Done():
	}

	logger.Info("server stopped gracefully")
}
