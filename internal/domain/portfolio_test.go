package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestBuildPortfolioRows(t *testing.T) {
	now := time.Now()
	prices := NewPriceBook([]TokenPrice{
		{Symbol: "ETH", Price: decimal.NewFromInt(2000), ObservedAt: now},
		{Symbol: "ZIL", Price: decimal.NewFromFloat(0.02), ObservedAt: now},
	})

	balances := []WalletBalance{
		{Symbol: "ETH", Amount: decimal.NewFromFloat(1.5), Chain: ChainEthereum},
		{Symbol: "ZIL", Amount: decimal.NewFromInt(1000), Chain: ChainZilliqa},
		{Symbol: "OSMO", Amount: decimal.NewFromInt(50), Chain: ChainOsmosis},
		{Symbol: "DUST", Amount: decimal.Zero, Chain: ChainEthereum},         // filtered: non-positive
		{Symbol: "MYS", Amount: decimal.NewFromInt(7), Chain: Chain("Sola")}, // filtered: unknown chain
	}

	rows := BuildPortfolioRows(balances, prices)

	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}

	// Ascending chain priority: Zilliqa (20), Ethereum (50), Osmosis (100)
	if rows[0].Chain != ChainZilliqa || rows[1].Chain != ChainEthereum || rows[2].Chain != ChainOsmosis {
		t.Errorf("Unexpected order: %s, %s, %s", rows[0].Chain, rows[1].Chain, rows[2].Chain)
	}

	if rows[1].Formatted != "1.50" {
		t.Errorf("Expected formatted amount 1.50, got %s", rows[1].Formatted)
	}
	if !rows[1].USDValue.Equal(decimal.NewFromInt(3000)) {
		t.Errorf("Expected USD value 3000, got %v", rows[1].USDValue)
	}

	// OSMO has no price: value should be zero, row still present
	if !rows[2].USDValue.Equal(decimal.Zero) {
		t.Errorf("Missing price should value at zero, got %v", rows[2].USDValue)
	}
}

func TestChain_Priority(t *testing.T) {
	cases := map[Chain]int{
		ChainOsmosis:    100,
		ChainEthereum:   50,
		ChainArbitrum:   30,
		ChainZilliqa:    20,
		ChainNeo:        20,
		Chain("Phantm"): -99,
	}
	for chain, want := range cases {
		if got := chain.Priority(); got != want {
			t.Errorf("%s: expected priority %d, got %d", chain, want, got)
		}
	}
}
