package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"titan-market/internal/api"
	"titan-market/internal/db"
	"titan-market/internal/feed"
	"titan-market/internal/logger"
	"titan-market/internal/market"
)

var version = "dev"

func main() {
	port := flag.Int("port", 13380, "HTTP server port")
	flag.Parse()

	logger.Banner(version)

	database, err := db.Open()
	if err != nil {
		logger.Error("DB", fmt.Sprintf("Failed to open database: %v", err))
		os.Exit(1)
	}
	defer database.Close()

	cfg := database.LoadConfig()
	if v := os.Getenv("TITAN_FEED_URL"); v != "" {
		cfg.FeedBaseURL = v
	}

	feeds := feed.NewClient(cfg.FeedBaseURL, cfg.FeedTimeout, cfg.MaxConcurrentFetch)
	engine := market.NewEngine(feeds, database, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if !feeds.HealthCheck(checkCtx) {
			logger.Warn("Feed", "Health check failed, feeds may be unreachable")
		}
	}()

	engine.Start(ctx)

	srv := api.NewServer(cfg, engine, database)
	addr := fmt.Sprintf("127.0.0.1:%d", *port)
	httpServer := &http.Server{Addr: addr, Handler: srv.Handler()}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		engine.Stop(shutdownCtx)
		httpServer.Shutdown(shutdownCtx)
	}()

	logger.Server(addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server", fmt.Sprintf("Failed: %v", err))
		os.Exit(1)
	}
}
