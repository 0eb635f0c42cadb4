package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/skiphire/skip-browser/internal/config"
	"github.com/skiphire/skip-browser/internal/scheduler"
	"github.com/skiphire/skip-browser/internal/server/handlers"
	"github.com/skiphire/skip-browser/internal/server/router"
	browsesvc "github.com/skiphire/skip-browser/internal/service/browse"
	cataloguesvc "github.com/skiphire/skip-browser/internal/service/catalogue"
	catalogueclient "github.com/skiphire/skip-browser/pkg/clients/catalogue"
	"github.com/skiphire/skip-browser/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	client := catalogueclient.NewClient(cfg.Catalogue)
	catalogueSvc := cataloguesvc.NewService(client,
		time.Duration(cfg.Cache.TTLMinutes)*time.Minute,
		baseLogger.Named("svc.catalogue"))

	fetchTimeout := time.Duration(cfg.Catalogue.TimeoutSeconds) * time.Second
	browseSvc := browsesvc.NewService(catalogueSvc, fetchTimeout, baseLogger.Named("svc.browse"))

	browseHandler := handlers.NewBrowseHandler(browseSvc, cfg.Contact, baseLogger.Named("handlers.browse"))
	engine := router.New(browseHandler, baseLogger.Named("router"))

	corsWrapper := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	})

	sched := scheduler.NewScheduler(*cfg, catalogueSvc, browseSvc, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      corsWrapper.Handler(engine),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
