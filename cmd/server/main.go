package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"organizeddocs/internal/config"
	"organizeddocs/internal/handler"
	"organizeddocs/internal/middleware"
	"organizeddocs/internal/repository"
	serviceDocsys "organizeddocs/internal/service/docsystem"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	out, closeLog, err := config.LogOutput(cfg, os.Stdout)
	if err != nil {
		log.Fatalf("Failed to set up log file: %v", err)
	}
	defer closeLog()
	logger := config.NewLogger(cfg, out)
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"sort_by", cfg.SingleSortBy,
		"sort_order", cfg.SingleSortOrder,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer stores.Close()

	listingCfg, err := cfg.Listing()
	if err != nil {
		log.Fatalf("Invalid listing configuration: %v", err)
	}

	resolver := serviceDocsys.NewTaxonomyResolver(stores.Categories, logger)
	builder, err := serviceDocsys.NewListingBuilder(resolver, stores.Documents, listingCfg, logger)
	if err != nil {
		log.Fatalf("Failed to create listing builder: %v", err)
	}

	logger.Info("services initialized", "backend", stores.Backend)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", handler.HealthCheck(stores.Backend))
	handler.NewListingHandler(resolver, builder, logger).RegisterRoutes(mux)

	// Apply middleware (order matters: recovery inside the logger so panics get a logged 500)
	var h http.Handler = mux
	h = middleware.Recovery(logger)(h)
	h = middleware.RequestLogger(logger)(h)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}()

	logger.Info("listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
	logger.Info("server stopped")
}
