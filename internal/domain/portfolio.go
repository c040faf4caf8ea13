package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Chain identifies the network a wallet balance lives on.
type Chain string

const (
	ChainOsmosis  Chain = "Osmosis"
	ChainEthereum Chain = "Ethereum"
	ChainArbitrum Chain = "Arbitrum"
	ChainZilliqa  Chain = "Zilliqa"
	ChainNeo      Chain = "Neo"
)

const unknownChainPriority = -99

// Priority returns the display priority for a chain. Unknown chains get
// a sentinel priority that excludes them from portfolio views.
func (c Chain) Priority() int {
	switch c {
	case ChainOsmosis:
		return 100
	case ChainEthereum:
		return 50
	case ChainArbitrum:
		return 30
	case ChainZilliqa, ChainNeo:
		return 20
	default:
		return unknownChainPriority
	}
}

// WalletBalance is a per-chain holding as reported by a wallet.
type WalletBalance struct {
	Symbol string          `json:"symbol"`
	Amount decimal.Decimal `json:"amount"`
	Chain  Chain           `json:"chain"`
}

// PortfolioRow is a wallet balance prepared for display: filtered,
// ordered, formatted, and valued in USD.
type PortfolioRow struct {
	WalletBalance
	Formatted string          `json:"formatted"` // Amount to 2 decimal places
	USDValue  decimal.Decimal `json:"usd_value"` // Zero when the price is unknown
}

// BuildPortfolioRows filters out non-positive amounts and unknown
// chains, sorts the remainder by ascending chain priority, and attaches
// formatted amounts and USD values. A missing price yields a zero USD
// value rather than dropping the row.
func BuildPortfolioRows(balances []WalletBalance, prices *PriceBook) []PortfolioRow {
	kept := make([]WalletBalance, 0, len(balances))
	for _, b := range balances {
		if b.Chain.Priority() > unknownChainPriority && b.Amount.IsPositive() {
			kept = append(kept, b)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Chain.Priority() < kept[j].Chain.Priority()
	})

	rows := make([]PortfolioRow, 0, len(kept))
	for _, b := range kept {
		usdValue := decimal.Zero
		if price, ok := prices.Price(b.Symbol); ok {
			usdValue = price.Mul(b.Amount)
		}
		rows = append(rows, PortfolioRow{
			WalletBalance: b,
			Formatted:     b.Amount.StringFixed(2),
			USDValue:      usdValue,
		})
	}
	return rows
}
