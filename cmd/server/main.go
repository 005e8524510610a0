package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"desaweb/docs" // swagger docs
	"desaweb/internal/app"
	"desaweb/internal/config"
	"desaweb/internal/logger"
	"desaweb/internal/router"
)

// @title Village Website API
// @version 1.0
// @description Public content and admin API for a village website: news, events, gallery, tourism, UMKM and the village profile.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		// logger config lives in cfg, so this one goes to stderr
		_, _ = os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(cfg.IsDevelopment(), cfg.LogLevel)
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log, app.Options{Media: true})
	if err != nil {
		log.Fatal("init application", zap.Error(err))
	}
	defer a.Close()

	if err := a.Migrate(); err != nil {
		log.Fatal("auto-migrate", zap.Error(err))
	}

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "http://"), "https://")
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, log, a.Sessions, a.Handlers())

	addr := ":" + cfg.ServerPort
	go func() {
		log.Info("server listening",
			zap.String("addr", addr),
			zap.String("db_driver", cfg.DBDriver),
			zap.String("storage", cfg.Storage.Provider),
			zap.String("swagger", "http://"+docs.SwaggerInfo.Host+"/swagger/index.html"),
		)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown", zap.Error(err))
	}
}
