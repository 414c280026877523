package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/weiawesome/wes-io-live/feed-service/internal/config"
	"github.com/weiawesome/wes-io-live/feed-service/internal/handler"
	"github.com/weiawesome/wes-io-live/feed-service/internal/seed"
	"github.com/weiawesome/wes-io-live/feed-service/internal/service"
	"github.com/weiawesome/wes-io-live/feed-service/internal/session"
	pkglog "github.com/weiawesome/wes-io-live/feed-service/pkg/log"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		l := pkglog.L()
		l.Fatal().Err(err).Msg("failed to load config")
	}

	// 2. Initialize structured logger
	pkglog.Init(pkglog.Config{
		Level:       cfg.Log.Level,
		Pretty:      cfg.Log.Level == "debug",
		ServiceName: "feed-service",
	})
	logger := pkglog.L()

	// 3. Load the seed world every session starts from
	world, err := seed.Load(cfg.Seed.File)
	if err != nil {
		logger.Fatal().Err(err).Str("file", cfg.Seed.File).Msg("failed to load seed")
	}
	factory := world.Factory(nil)

	// A seed that does not apply must fail startup.
	if _, err := factory(); err != nil {
		logger.Fatal().Err(err).Msg("seed does not apply cleanly")
	}
	logger.Info().
		Int("users", len(world.Users)).
		Int("posts", len(world.Posts)).
		Msg("seed loaded")

	// 4. Create session registry and service
	manager := session.NewManager(factory, cfg.Session.MaxSessions, nil)
	svc := service.NewFeedService(manager)

	// 5. Start idle-session reaper
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reaper := session.NewReaper(manager, cfg.Session)
	reaper.Start(ctx)
	logger.Info().
		Dur("interval", cfg.Session.SweepInterval).
		Dur("idle_timeout", cfg.Session.IdleTimeout).
		Msg("session reaper started")

	// 6. Setup Gin router + HTTP server
	httpHandler := handler.NewHandler(svc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(pkglog.GinMiddleware(logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": manager.Len()})
	})
	httpHandler.RegisterRoutes(r)

	// 7. Start server goroutine
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logger.Info().Str("addr", addr).Msg("feed-service starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	// 8. Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutdown signal received")

	shutdownTimeout := cfg.Server.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 5 * time.Second
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)

		// stop the reaper ticker and wait for the in-flight sweep
		cancel()
		reaper.Stop()
		<-reaper.Done()

		// drain HTTP
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("HTTP server forced to shutdown")
		}
	}()

	select {
	case <-shutdownDone:
		logger.Info().Int("open_sessions", manager.Len()).Msg("feed-service stopped")
	case <-time.After(30 * time.Second):
		logger.Warn().Msg("shutdown timed out after 30s")
	}
}
