package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"swap_go/internal/app"
	"swap_go/internal/infra"
	"swap_go/internal/infra/stream"
	"swap_go/internal/server"

	"github.com/joho/godotenv"

	_ "net/http/pprof" // For pprof profiling
)

func main() {
	// 0. Optional .env for local overrides (ignored when absent)
	godotenv.Load()

	// 1. Pprof Server (for performance profiling)
	go func() {
		// Localhost only for security
		slog.Info("🕵️ Pprof server started on localhost:6060")
		if err := http.ListenAndServe("localhost:6060", nil); err != nil {
			slog.Error("Pprof server failed", slog.Any("error", err))
		}
	}()

	// 2. System Bootstrapping
	bootstrap := app.NewBootstrap()
	if err := bootstrap.Initialize(); err != nil {
		slog.Error("❌ Bootstrapping failed", slog.Any("error", err))
		os.Exit(1)
	}

	// 3. Graceful Shutdown Context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := bootstrap.Config

	// 4. Price plumbing: inbox processor + polling feed
	bootstrap.Swaps.StartPriceProcessor(ctx)

	feed := infra.NewPriceFeedClientWithConfig(
		bootstrap.Swaps.SetPrices,
		cfg.API.PriceFeed.URL,
		cfg.API.PriceFeed.PollIntervalSec,
	)
	if err := feed.Start(ctx); err != nil {
		slog.Error("Failed to start price feed", slog.Any("error", err))
	}
	defer feed.Stop()
	slog.InfoContext(ctx, "✅ Price feed started", slog.String("url", cfg.API.PriceFeed.URL))

	// 5. Optional streaming prices
	if cfg.API.Stream.Enabled {
		worker := stream.NewWorker(cfg.API.Stream.WSURL, cfg.API.Stream.Symbols, bootstrap.Swaps.Inbox())
		if err := worker.Connect(ctx); err != nil {
			slog.Error("Failed to connect price stream", slog.Any("error", err))
		}
		defer worker.Disconnect()
		slog.InfoContext(ctx, "✅ Price stream started", slog.Int("symbols", len(cfg.API.Stream.Symbols)))
	}

	// 6. Background Asset Sync
	go bootstrap.SyncAssets(ctx)

	// 7. HTTP API
	api := &server.APIWebServer{
		Swaps:           bootstrap.Swaps,
		Ledger:          bootstrap.Ledger,
		DefaultSettings: bootstrap.DefaultSettings(),
	}

	addr := cfg.Server.Addr
	if addr == "" {
		addr = ":8080"
	}
	slog.InfoContext(ctx, "✨ Swap service fully operational", slog.String("addr", addr))

	if err := api.Serve(ctx, addr); err != nil && err != http.ErrServerClosed {
		slog.Error("HTTP server failed", slog.Any("error", err))
	}

	slog.InfoContext(ctx, "👋 Shutting down gracefully...")
}
