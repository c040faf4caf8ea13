package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestPriceBook_DedupeKeepsLatest(t *testing.T) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	book := NewPriceBook([]TokenPrice{
		{Symbol: "ETH", Price: decimal.NewFromInt(1900), ObservedAt: base},
		{Symbol: "eth", Price: decimal.NewFromInt(2000), ObservedAt: base.Add(time.Hour)},
		{Symbol: "ETH", Price: decimal.NewFromInt(1800), ObservedAt: base.Add(-time.Hour)},
	})

	if book.Len() != 1 {
		t.Fatalf("Expected 1 symbol after dedupe, got %d", book.Len())
	}
	price, ok := book.Price("ETH")
	if !ok {
		t.Fatal("ETH price should exist")
	}
	if !price.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("Expected latest observation 2000, got %v", price)
	}
}

func TestPriceBook_NonPositivePriceIsUnknown(t *testing.T) {
	now := time.Now()
	book := NewPriceBook([]TokenPrice{
		{Symbol: "ZRO", Price: decimal.Zero, ObservedAt: now},
		{Symbol: "NEG", Price: decimal.NewFromInt(-1), ObservedAt: now},
	})

	if book.Has("ZRO") {
		t.Error("Zero price should not resolve")
	}
	if book.Has("NEG") {
		t.Error("Negative price should not resolve")
	}
}

func TestPriceBook_ListSorted(t *testing.T) {
	now := time.Now()
	book := NewPriceBook([]TokenPrice{
		{Symbol: "USDC", Price: decimal.NewFromInt(1), ObservedAt: now},
		{Symbol: "ATOM", Price: decimal.NewFromInt(10), ObservedAt: now},
		{Symbol: "ETH", Price: decimal.NewFromInt(2000), ObservedAt: now},
	})

	list := book.List()
	if len(list) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(list))
	}
	if list[0].Symbol != "ATOM" || list[1].Symbol != "ETH" || list[2].Symbol != "USDC" {
		t.Errorf("Not sorted: %s, %s, %s", list[0].Symbol, list[1].Symbol, list[2].Symbol)
	}
}

func TestPriceBook_NilSafe(t *testing.T) {
	var book *PriceBook
	if _, ok := book.Price("ETH"); ok {
		t.Error("Nil book should resolve nothing")
	}
	if book.Len() != 0 || book.List() != nil {
		t.Error("Nil book should be empty")
	}
}

func TestCanonicalSymbol(t *testing.T) {
	if CanonicalSymbol(" eth ") != "ETH" {
		t.Errorf("Expected ETH, got %q", CanonicalSymbol(" eth "))
	}
}
