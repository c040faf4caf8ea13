package service

import (
	"context"
	"sync"

	"swap_go/internal/domain"
)

// SwapSession carries the per-request quoting inputs: the token pair,
// the raw amount string, and the user's settings. Sessions are plain
// values; nothing about a quote is stored between calls.
type SwapSession struct {
	From     string              `json:"from"`
	To       string              `json:"to"`
	AmountIn string              `json:"amount_in"`
	Settings domain.SwapSettings `json:"settings"`
}

// SwapService holds the current price snapshot and answers quote
// requests against it. Quoting itself is pure; the only state here is
// the price book, replaced wholesale by the feed and patched
// incrementally by streaming updates.
type SwapService struct {
	mu         sync.RWMutex
	latest     map[string]domain.TokenPrice
	book       *domain.PriceBook
	updateChan chan []domain.TokenPrice
}

// NewSwapService creates a new SwapService instance
func NewSwapService() *SwapService {
	return &SwapService{
		latest:     make(map[string]domain.TokenPrice),
		book:       domain.NewPriceBook(nil),
		updateChan: make(chan []domain.TokenPrice, 1000), // 버스트 대응을 위한 충분한 버퍼
	}
}

// SetPrices replaces the full price snapshot (feed poll result).
func (s *SwapService) SetPrices(entries []domain.TokenPrice) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.latest = make(map[string]domain.TokenPrice, len(entries))
	for _, e := range entries {
		s.mergeLocked(e)
	}
	s.rebuildLocked()
}

// UpsertPrices merges incremental price observations (stream updates),
// keeping the latest observation per symbol.
func (s *SwapService) UpsertPrices(entries []domain.TokenPrice) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range entries {
		s.mergeLocked(e)
	}
	s.rebuildLocked()
}

func (s *SwapService) mergeLocked(e domain.TokenPrice) {
	key := domain.CanonicalSymbol(e.Symbol)
	if key == "" {
		return
	}
	existing, ok := s.latest[key]
	if !ok || e.ObservedAt.After(existing.ObservedAt) {
		s.latest[key] = e
	}
}

func (s *SwapService) rebuildLocked() {
	entries := make([]domain.TokenPrice, 0, len(s.latest))
	for _, e := range s.latest {
		entries = append(entries, e)
	}
	s.book = domain.NewPriceBook(entries)
}

// Book returns the current price snapshot.
func (s *SwapService) Book() *domain.PriceBook {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.book
}

// Prices returns all known prices sorted by symbol.
func (s *SwapService) Prices() []domain.TokenPrice {
	return s.Book().List()
}

// Quote computes a quote for the session against the current prices.
// Returns nil when no quote is available.
func (s *SwapService) Quote(session SwapSession) *domain.Quote {
	return domain.ComputeQuote(s.Book(), session.From, session.To, session.AmountIn, session.Settings)
}

// Inbox returns the channel for incoming price updates
func (s *SwapService) Inbox() chan<- []domain.TokenPrice {
	return s.updateChan
}

// StartPriceProcessor starts a background goroutine to drain the update channel
func (s *SwapService) StartPriceProcessor(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case entries := <-s.updateChan:
				s.UpsertPrices(entries)
			}
		}
	}()
}
