package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rogerio-castellano/designs-lookup/internal/config"
	api "github.com/rogerio-castellano/designs-lookup/internal/http"
	"github.com/rogerio-castellano/designs-lookup/internal/http/ban"
	"github.com/rogerio-castellano/designs-lookup/internal/http/handlers"
	rl "github.com/rogerio-castellano/designs-lookup/internal/http/rate_limiter"
	"github.com/rogerio-castellano/designs-lookup/internal/lookup"
	"github.com/rogerio-castellano/designs-lookup/internal/redissvc"
	"github.com/rogerio-castellano/designs-lookup/internal/repo"
	"github.com/rogerio-castellano/designs-lookup/internal/sheet"
)

// @title Designs Lookup API
// @version 1.0
// @description Stock lookup by gender and age group over a published inventory spreadsheet.
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var store ban.Store = ban.NewMemoryStore()
	if cfg.RedisAddr != "" {
		redisService, err := redissvc.Connect(ctx, cfg.RedisAddr)
		if err != nil {
			log.Fatalf("❌ Could not connect to Redis: %v", err)
		}
		defer redisService.Close()
		store = ban.NewRedisStore(redisService)
		log.Printf("🔗 Ban state shared through Redis at %s", cfg.RedisAddr)
	}
	banner := ban.NewBanner(store, cfg.BanStrikes, cfg.BanWindow, cfg.BanDuration)
	limiter := rl.New(cfg.RateLimitRPS, cfg.RateLimitBurst, 5*time.Minute)

	go limiter.StartVisitorCleanupLoop(ctx, time.Minute)
	go banner.StartDailyBanSummary(ctx)

	trustedProxies, err := api.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	fetcher := sheet.NewFetcher(cfg.SheetCSVURL, cfg.FetchTimeout, cfg.MaxBodyBytes)
	handlers.SetInventoryRepo(repo.NewSheetInventoryRepository(fetcher))
	handlers.SetMatchMode(lookup.ParseMatchMode(cfg.MatchMode))

	srv := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: api.NewRouter(
			api.WithAccessLog(),
			api.WithTrustedProxies(trustedProxies),
			api.WithRateLimit(limiter, banner),
			api.WithRequestTimeout(cfg.FetchTimeout+5*time.Second),
		),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Failed to shut down cleanly: %v", err)
		}
	}()

	log.Printf("✅ Server running on %s", cfg.HTTPAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
