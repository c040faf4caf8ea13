package service

import (
	"context"
	"testing"
	"time"

	"swap_go/internal/domain"

	"github.com/shopspring/decimal"
)

func TestSwapService_QuoteAgainstCurrentPrices(t *testing.T) {
	svc := NewSwapService()
	now := time.Now()

	svc.SetPrices([]domain.TokenPrice{
		{Symbol: "ETH", Price: decimal.NewFromInt(2000), ObservedAt: now},
		{Symbol: "USDC", Price: decimal.NewFromInt(1), ObservedAt: now},
	})

	session := SwapSession{From: "ETH", To: "USDC", AmountIn: "1", Settings: domain.DefaultSwapSettings()}
	q := svc.Quote(session)
	if q == nil {
		t.Fatal("Quote should exist")
	}
	if !q.USDValueIn.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("Expected usd value 2000, got %v", q.USDValueIn)
	}

	// Unknown pair against the same book
	if svc.Quote(SwapSession{From: "DOGE", To: "USDC", AmountIn: "1", Settings: domain.DefaultSwapSettings()}) != nil {
		t.Error("Unknown symbol should yield no quote")
	}
}

func TestSwapService_SetPricesReplacesSnapshot(t *testing.T) {
	svc := NewSwapService()
	now := time.Now()

	svc.SetPrices([]domain.TokenPrice{
		{Symbol: "ETH", Price: decimal.NewFromInt(2000), ObservedAt: now},
	})
	svc.SetPrices([]domain.TokenPrice{
		{Symbol: "USDC", Price: decimal.NewFromInt(1), ObservedAt: now},
	})

	if svc.Book().Has("ETH") {
		t.Error("Replaced snapshot should not retain old symbols")
	}
	if !svc.Book().Has("USDC") {
		t.Error("New snapshot should be visible")
	}
}

func TestSwapService_UpsertKeepsLatestObservation(t *testing.T) {
	svc := NewSwapService()
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	svc.SetPrices([]domain.TokenPrice{
		{Symbol: "ETH", Price: decimal.NewFromInt(2000), ObservedAt: base},
	})
	// Stale update must not win
	svc.UpsertPrices([]domain.TokenPrice{
		{Symbol: "ETH", Price: decimal.NewFromInt(1500), ObservedAt: base.Add(-time.Hour)},
	})

	price, _ := svc.Book().Price("ETH")
	if !price.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("Stale update overwrote newer price: %v", price)
	}

	svc.UpsertPrices([]domain.TokenPrice{
		{Symbol: "ETH", Price: decimal.NewFromInt(2100), ObservedAt: base.Add(time.Hour)},
	})
	price, _ = svc.Book().Price("ETH")
	if !price.Equal(decimal.NewFromInt(2100)) {
		t.Errorf("Newer update should win: %v", price)
	}
}

func TestSwapService_AsyncInbox(t *testing.T) {
	svc := NewSwapService()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc.StartPriceProcessor(ctx)

	svc.Inbox() <- []domain.TokenPrice{
		{Symbol: "ETH", Price: decimal.NewFromInt(2000), ObservedAt: time.Now()},
	}

	// Give it a moment to process
	time.Sleep(100 * time.Millisecond)

	if !svc.Book().Has("ETH") {
		t.Fatal("Inbox update should be processed")
	}
}

func TestSwapService_PricesSorted(t *testing.T) {
	svc := NewSwapService()
	now := time.Now()

	svc.SetPrices([]domain.TokenPrice{
		{Symbol: "USDC", Price: decimal.NewFromInt(1), ObservedAt: now},
		{Symbol: "ATOM", Price: decimal.NewFromInt(10), ObservedAt: now},
	})

	prices := svc.Prices()
	if len(prices) != 2 || prices[0].Symbol != "ATOM" {
		t.Errorf("Prices should be sorted by symbol: %+v", prices)
	}
}
