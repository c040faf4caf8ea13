package infra

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultUserAgent is a browser-like user agent string to avoid bot detection
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Config holds all application settings, loaded from YAML and then
// overridden by environment variables for sensitive values.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	API struct {
		PriceFeed struct {
			URL             string `yaml:"url"`
			PollIntervalSec int    `yaml:"poll_interval_sec"`
		} `yaml:"price_feed"`
		Stream struct {
			Enabled bool     `yaml:"enabled"`
			WSURL   string   `yaml:"ws_url"`
			Symbols []string `yaml:"symbols"`
		} `yaml:"stream"`
	} `yaml:"api"`

	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	Storage struct {
		Backend string `yaml:"backend"` // "sqlite" or "redis"
		Redis   struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"storage"`

	Swap struct {
		DefaultSlippageBps    int64           `yaml:"default_slippage_bps"`
		DefaultImpactLimitPct decimal.Decimal `yaml:"default_impact_limit_pct"`
		LedgerKey             string          `yaml:"ledger_key"`
		IconSyncConcurrency   int             `yaml:"icon_sync_concurrency"`
		IconSyncDisabled      bool            `yaml:"icon_sync_disabled"`
	} `yaml:"swap"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// LoadConfig reads and parses the configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	overrideWithEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks configuration validity
func (c *Config) Validate() error {
	if c.API.PriceFeed.URL == "" || (!strings.HasPrefix(c.API.PriceFeed.URL, "http://") && !strings.HasPrefix(c.API.PriceFeed.URL, "https://")) {
		return fmt.Errorf("invalid price feed URL: %s", c.API.PriceFeed.URL)
	}
	if c.API.PriceFeed.PollIntervalSec <= 0 {
		return fmt.Errorf("price feed poll interval must be positive")
	}

	if c.API.Stream.Enabled {
		if !strings.HasPrefix(c.API.Stream.WSURL, "ws://") && !strings.HasPrefix(c.API.Stream.WSURL, "wss://") {
			return fmt.Errorf("invalid stream WS URL: %s", c.API.Stream.WSURL)
		}
		if len(c.API.Stream.Symbols) == 0 {
			return fmt.Errorf("at least one stream symbol is required")
		}
	}

	switch c.Storage.Backend {
	case "", "sqlite":
	case "redis":
		if c.Storage.Redis.Addr == "" {
			return fmt.Errorf("redis backend requires an address")
		}
	default:
		return fmt.Errorf("unknown storage backend: %s", c.Storage.Backend)
	}

	if c.Swap.DefaultSlippageBps < 0 {
		return fmt.Errorf("default slippage must be non-negative")
	}
	if c.Swap.DefaultImpactLimitPct.IsNegative() {
		return fmt.Errorf("default impact limit must be non-negative")
	}

	return nil
}

// overrideWithEnv overrides settings when environment variables are present.
func overrideWithEnv(cfg *Config) {
	if addr := os.Getenv("SWAP_REDIS_ADDR"); addr != "" {
		cfg.Storage.Redis.Addr = addr
	}
	if pass := os.Getenv("SWAP_REDIS_PASSWORD"); pass != "" {
		cfg.Storage.Redis.Password = pass
	}
	if addr := os.Getenv("SWAP_SERVER_ADDR"); addr != "" {
		cfg.Server.Addr = addr
	}
	if url := os.Getenv("SWAP_PRICE_FEED_URL"); url != "" {
		cfg.API.PriceFeed.URL = url
	}
}
