package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"yasno-outages/internal/api"
	"yasno-outages/internal/api/handlers"
	"yasno-outages/internal/config"
	"yasno-outages/internal/data"
	"yasno-outages/internal/outage"
	"yasno-outages/internal/refresh"

	"github.com/gin-gonic/gin"
)

func main() {
	cfgPath := flag.String("config", os.Getenv("CONFIG_FILE"), "Path to YAML config (env overrides apply either way)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Printf("Tracking %s (city=%q group=%q, refresh every %d min)", cfg.Name(), cfg.City, cfg.Group, cfg.ScanInterval)

	client := data.NewYasnoClient(cfg.APIURL)
	if cfg.CacheTTL > 0 {
		// Development aid only; never cache in production.
		if os.Getenv("API_ENV") == "production" {
			log.Printf("Ignoring cache_ttl=%v in production", cfg.CacheTTL)
		} else {
			client.Cache = data.NewResponseCache(cfg.CacheTTL)
			log.Printf("Response cache enabled (ttl=%v)", cfg.CacheTTL)
		}
	}

	builder, err := outage.NewBuilder(cfg.City, cfg.Group, log.Default())
	if err != nil {
		log.Fatalf("Failed to create builder: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	refresher := refresh.New(client, builder, cfg.RefreshPeriod(), log.Default())
	if err := refresher.Begin(ctx); err != nil {
		// Serve anyway: the snapshot reads as no_schedule until a refresh succeeds.
		log.Printf("Initial schedule fetch failed: %v", err)
	}
	defer refresher.End()

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	handler := handlers.NewOutageHandler(refresher, cfg.Name(), cfg.UniqueID(), cfg.RefreshPeriod(), builder.Location())
	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           api.NewRouter(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting API server on %s", cfg.Listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
}
