package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"supaportal/backend/internal/config"
	apihttp "supaportal/backend/internal/http"
	"supaportal/backend/internal/observability"
	"supaportal/backend/internal/supabase"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(reg, cfg.Platform.Service, cfg.Platform.Environment)

	// The only Supabase client of the process. Everything below shares it.
	client, err := supabase.NewClient(supabase.Config{
		URL:     cfg.SupabaseURL,
		AnonKey: cfg.SupabaseAnonKey,
		Schema:  cfg.SupabaseSchema,
	})
	metrics.ObserveClientInit(err)
	if err != nil {
		detail := err.Error()
		var ce *supabase.ConfigurationError
		if errors.As(err, &ce) {
			detail = ce.Detail()
		}
		logger.Fatal("supabase client init failed", zap.Error(err), zap.String("detail", detail))
	}

	router := apihttp.NewRouter(apihttp.RouterDeps{
		Cfg:      cfg,
		Supabase: client,
		Logger:   logger,
		Metrics:  metrics,
		Gatherer: reg,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 20 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// graceful shutdown
	go func() {
		logger.Info("API listening",
			zap.String("addr", srv.Addr),
			zap.String("supabase_url", client.URL()),
			zap.String("env", cfg.Platform.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 2)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("shutting down...")
	_ = srv.Shutdown(ctxShutdown)
}
