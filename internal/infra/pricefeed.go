package infra

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"swap_go/internal/domain"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// feedEntry represents one observation in the upstream price document
type feedEntry struct {
	Currency string  `json:"currency"`
	Date     string  `json:"date"`
	Price    float64 `json:"price"`
}

// PriceFeedClient polls a JSON price document and pushes deduplicated
// token prices to its callback. A failed poll keeps the previous
// snapshot in place; quoting degrades to "no quote" for symbols that
// never arrived.
type PriceFeedClient struct {
	onUpdate     func([]domain.TokenPrice)
	pollInterval time.Duration
	apiURL       string
	httpClient   *http.Client
	cancel       context.CancelFunc
	wg           sync.WaitGroup
}

// NewPriceFeedClient creates a new price feed client
func NewPriceFeedClient(onUpdate func([]domain.TokenPrice)) *PriceFeedClient {
	return &PriceFeedClient{
		onUpdate:     onUpdate,
		pollInterval: 60 * time.Second, // Default: 1 minute
		apiURL:       "https://interview.switcheo.com/prices.json",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewPriceFeedClientWithConfig creates a client with custom configuration
func NewPriceFeedClientWithConfig(onUpdate func([]domain.TokenPrice), apiURL string, pollIntervalSec int) *PriceFeedClient {
	client := NewPriceFeedClient(onUpdate)
	if apiURL != "" {
		client.apiURL = apiURL
	}
	if pollIntervalSec > 0 {
		client.pollInterval = time.Duration(pollIntervalSec) * time.Second
	}
	return client
}

// Start begins polling for price updates
func (c *PriceFeedClient) Start(ctx context.Context) error {
	ctx, c.cancel = context.WithCancel(ctx)

	// Fetch immediately on start
	if err := c.fetchPrices(ctx); err != nil {
		slog.Warn("Initial price fetch failed", slog.Any("error", err))
		// Continue anyway - will retry on next tick
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				slog.Error("Price feed polling panic recovered", slog.Any("panic", r))
			}
		}()

		ticker := time.NewTicker(c.pollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				slog.Info("Price feed polling stopped")
				return
			case <-ticker.C:
				if err := c.fetchPrices(ctx); err != nil {
					slog.Warn("Price fetch failed", slog.Any("error", err))
				}
			}
		}
	}()

	return nil
}

// fetchPrices fetches the current price document with retry logic
func (c *PriceFeedClient) fetchPrices(ctx context.Context) error {
	var lastErr error
	for i := 0; i < 3; i++ {
		if i > 0 {
			// Exponential backoff: 1s, 2s, 4s
			delay := time.Duration(1<<uint(i-1)) * time.Second
			slog.Info("Retrying price fetch", slog.Int("attempt", i), slog.Duration("delay", delay))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		err := c.doFetch(ctx)
		if err == nil {
			GlobalMetrics.RecordFeedFetch()
			return nil
		}
		lastErr = err
		slog.Warn("Price fetch attempt failed", slog.Int("attempt", i+1), slog.Any("error", err))
	}
	GlobalMetrics.RecordFeedError()
	return lastErr
}

func (c *PriceFeedClient) doFetch(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL, nil)
	if err != nil {
		return err
	}

	// Add browser-like User-Agent to avoid bot detection
	req.Header.Set("User-Agent", DefaultUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var entries []feedEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("empty price document")
	}

	prices := normalizeEntries(entries)
	if c.onUpdate != nil {
		c.onUpdate(prices)
	}

	slog.Debug("Price snapshot updated", slog.Int("symbols", len(prices)))
	return nil
}

// normalizeEntries converts raw feed observations to token prices,
// keeping the latest observation per currency and applying the display
// symbol conventions.
func normalizeEntries(entries []feedEntry) []domain.TokenPrice {
	latest := make(map[string]feedEntry, len(entries))
	for _, e := range entries {
		key := strings.ToUpper(e.Currency)
		if key == "" {
			continue
		}
		existing, ok := latest[key]
		if !ok || parseFeedDate(e.Date).After(parseFeedDate(existing.Date)) {
			latest[key] = e
		}
	}

	prices := make([]domain.TokenPrice, 0, len(latest))
	for _, e := range latest {
		prices = append(prices, domain.TokenPrice{
			Symbol:     displaySymbol(e.Currency),
			Price:      decimal.NewFromFloat(e.Price),
			ObservedAt: parseFeedDate(e.Date),
		})
	}
	return prices
}

func parseFeedDate(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// displaySymbol applies the feed's display conventions: liquid-staked
// tokens use a lowercase "st"/"r" prefix, STRD stays as-is.
func displaySymbol(currency string) string {
	switch currency {
	case "STRD":
		return "STRD"
	case "RATOM":
		return "rATOM"
	default:
		if strings.HasPrefix(currency, "ST") {
			return "st" + currency[2:]
		}
		return currency
	}
}

// Stop stops the polling
func (c *PriceFeedClient) Stop() {
	if c.cancel != nil {
		c.cancel()
		c.wg.Wait()
	}
}
