package infra

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"swap_go/internal/domain"

	"github.com/shopspring/decimal"
)

const mockPriceDoc = `[
	{"currency": "ETH", "date": "2023-08-29T07:10:52.000Z", "price": 1645.93},
	{"currency": "ETH", "date": "2023-08-29T07:11:52.000Z", "price": 1646.50},
	{"currency": "USDC", "date": "2023-08-29T07:10:40.000Z", "price": 1.0},
	{"currency": "RATOM", "date": "2023-08-29T07:10:40.000Z", "price": 10.25},
	{"currency": "STOSMO", "date": "2023-08-29T07:10:40.000Z", "price": 0.43},
	{"currency": "STRD", "date": "2023-08-29T07:10:40.000Z", "price": 1.7}
]`

func TestPriceFeedClient_FetchAndDedupe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(mockPriceDoc))
	}))
	defer server.Close()

	var received []domain.TokenPrice
	done := make(chan struct{})
	client := NewPriceFeedClientWithConfig(func(prices []domain.TokenPrice) {
		received = prices
		close(done)
	}, server.URL, 3600)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := client.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer client.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Feed callback not invoked")
	}

	book := domain.NewPriceBook(received)
	if book.Len() != 5 {
		t.Fatalf("Expected 5 deduplicated symbols, got %d", book.Len())
	}

	// Duplicate ETH entries: latest observation wins
	price, ok := book.Price("ETH")
	if !ok || !price.Equal(decimal.NewFromFloat(1646.50)) {
		t.Errorf("Expected latest ETH price 1646.50, got %v", price)
	}
}

func TestPriceFeedClient_ErrorKeepsQuiet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	called := false
	client := NewPriceFeedClientWithConfig(func([]domain.TokenPrice) { called = true }, server.URL, 3600)

	// doFetch fails; callback must not fire with partial data
	if err := client.doFetch(context.Background()); err == nil {
		t.Fatal("Expected fetch error on 500")
	}
	if called {
		t.Error("Callback must not fire on a failed fetch")
	}
}

func TestDisplaySymbol(t *testing.T) {
	cases := map[string]string{
		"STRD":   "STRD",
		"RATOM":  "rATOM",
		"STOSMO": "stOSMO",
		"STATOM": "stATOM",
		"ETH":    "ETH",
		"USDC":   "USDC",
	}
	for in, want := range cases {
		if got := displaySymbol(in); got != want {
			t.Errorf("displaySymbol(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeEntries_SkipsEmptyCurrency(t *testing.T) {
	prices := normalizeEntries([]feedEntry{
		{Currency: "", Date: "2023-08-29T07:10:40.000Z", Price: 1},
		{Currency: "ETH", Date: "2023-08-29T07:10:40.000Z", Price: 1600},
	})
	if len(prices) != 1 || prices[0].Symbol != "ETH" {
		t.Errorf("Expected single ETH entry, got %+v", prices)
	}
}
