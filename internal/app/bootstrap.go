package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"swap_go/internal/domain"
	"swap_go/internal/infra"
	"swap_go/internal/infra/storage"
	"swap_go/internal/service"

	"github.com/redis/go-redis/v9"
)

// Bootstrap orchestrates the application startup sequence
type Bootstrap struct {
	Config     *infra.Config
	Store      domain.KeyValueStore
	Ledger     *service.LedgerService
	Swaps      *service.SwapService
	Downloader *infra.IconDownloader
}

// NewBootstrap creates a new Bootstrap instance
func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Initialize performs core system initialization (config, logger, store, services)
func (b *Bootstrap) Initialize() error {
	slog.Info("🚀 Bootstrapping Swap Go...")

	// 1. Load Config
	cfg, err := infra.LoadConfig("configs/config.yaml")
	if err != nil {
		return err // Let main handle the error
	}
	b.Config = cfg

	// 2. Setup Logger
	logger := infra.NewLogger(cfg)
	slog.SetDefault(logger)

	// 3. Initialize the ledger store
	store, err := b.openStore()
	if err != nil {
		return err
	}
	b.Store = store
	b.Ledger = service.NewLedgerService(store, cfg.Swap.LedgerKey)
	slog.Info("✅ Ledger store initialized", slog.String("backend", b.backendName()))

	// 4. Swap service (prices arrive from the feed after startup)
	b.Swaps = service.NewSwapService()

	// 5. Initialize Icon Downloader
	if !cfg.Swap.IconSyncDisabled {
		downloader, err := infra.NewIconDownloader()
		if err != nil {
			return err
		}
		b.Downloader = downloader
		slog.Info("✅ Icon downloader ready")
	}

	return nil
}

func (b *Bootstrap) backendName() string {
	if b.Config.Storage.Backend == "" {
		return "sqlite"
	}
	return b.Config.Storage.Backend
}

func (b *Bootstrap) openStore() (domain.KeyValueStore, error) {
	switch b.backendName() {
	case "sqlite":
		return storage.NewSQLiteStore()
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     b.Config.Storage.Redis.Addr,
			Password: b.Config.Storage.Redis.Password,
			DB:       b.Config.Storage.Redis.DB,
		})
		store := storage.NewRedisStore(client)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			return nil, fmt.Errorf("redis unavailable: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", b.Config.Storage.Backend)
	}
}

// DefaultSettings returns the configured session defaults, falling back
// to the built-in defaults when unset.
func (b *Bootstrap) DefaultSettings() domain.SwapSettings {
	settings := domain.DefaultSwapSettings()
	if b.Config.Swap.DefaultSlippageBps > 0 {
		settings.SlippageBps = b.Config.Swap.DefaultSlippageBps
	}
	if b.Config.Swap.DefaultImpactLimitPct.IsPositive() {
		settings.PriceImpactLimitPct = b.Config.Swap.DefaultImpactLimitPct
	}
	return settings
}

// SyncAssets downloads icons for every symbol the app knows about:
// seeded ledger symbols plus whatever the feed has delivered so far.
func (b *Bootstrap) SyncAssets(ctx context.Context) {
	if b.Downloader == nil {
		return
	}
	slog.Info("🔄 Starting asset synchronization...")

	uniqueSymbols := make(map[string]bool)
	for _, bal := range domain.DefaultLedger() {
		uniqueSymbols[bal.Symbol] = true
	}
	for _, p := range b.Swaps.Prices() {
		uniqueSymbols[p.Symbol] = true
	}

	concurrency := b.Config.Swap.IconSyncConcurrency
	if concurrency <= 0 {
		concurrency = 5
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, concurrency)

	for symbol := range uniqueSymbols {
		wg.Add(1)
		go func(sym string) {
			defer wg.Done()
			select {
			case <-ctx.Done():
				return
			case semaphore <- struct{}{}: // Acquire
			}
			defer func() { <-semaphore }() // Release

			if _, err := b.Downloader.DownloadIcon(sym); err != nil {
				slog.Warn("Failed to download icon", slog.String("symbol", sym), slog.Any("error", err))
			}
		}(symbol)
	}

	wg.Wait()
	slog.Info("✨ Asset synchronization completed")
}
