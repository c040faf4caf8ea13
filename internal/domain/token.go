package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TokenPrice represents a single USD price observation for a token
type TokenPrice struct {
	Symbol     string          `json:"symbol"`      // Display symbol (e.g., "ETH", "rATOM")
	Price      decimal.Decimal `json:"price"`       // USD price
	ObservedAt time.Time       `json:"observed_at"` // When the feed observed this price
}

// CanonicalSymbol returns the canonical (upper-cased) form of a symbol.
// Price lookups and deduplication are case-insensitive.
func CanonicalSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// PriceBook is an immutable snapshot of the known token prices.
// Feeds may deliver multiple observations per symbol; the book keeps
// only the latest one per canonical symbol.
type PriceBook struct {
	prices map[string]TokenPrice
}

// NewPriceBook builds a book from raw feed entries, keeping the entry
// with the latest ObservedAt for each canonical symbol.
func NewPriceBook(entries []TokenPrice) *PriceBook {
	prices := make(map[string]TokenPrice, len(entries))
	for _, e := range entries {
		key := CanonicalSymbol(e.Symbol)
		if key == "" {
			continue
		}
		existing, ok := prices[key]
		if !ok || e.ObservedAt.After(existing.ObservedAt) {
			prices[key] = e
		}
	}
	return &PriceBook{prices: prices}
}

// Price returns the USD price for a symbol. Only positive prices
// resolve; a zero or negative price is treated as unknown.
func (b *PriceBook) Price(symbol string) (decimal.Decimal, bool) {
	if b == nil {
		return decimal.Zero, false
	}
	p, ok := b.prices[CanonicalSymbol(symbol)]
	if !ok || !p.Price.IsPositive() {
		return decimal.Zero, false
	}
	return p.Price, true
}

// Has reports whether a positive price is known for the symbol.
func (b *PriceBook) Has(symbol string) bool {
	_, ok := b.Price(symbol)
	return ok
}

// Len returns the number of distinct symbols in the book.
func (b *PriceBook) Len() int {
	if b == nil {
		return 0
	}
	return len(b.prices)
}

// List returns all entries sorted by display symbol.
func (b *PriceBook) List() []TokenPrice {
	if b == nil {
		return nil
	}
	result := make([]TokenPrice, 0, len(b.prices))
	for _, p := range b.prices {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Symbol < result[j].Symbol
	})
	return result
}
