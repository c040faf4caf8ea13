package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Balance is a single per-symbol holding. Amount never goes negative:
// debits that would underflow clamp to exactly zero.
type Balance struct {
	Symbol string          `json:"symbol"`
	Amount decimal.Decimal `json:"amount"`
}

// Ledger is the ordered per-symbol balance mapping for a session.
// Order is stable: existing entries keep their position, symbols seen
// for the first time are appended. Zero-balance entries persist.
type Ledger []Balance

// DefaultLedger returns the fixed seed set used when the backing store
// has never been written.
func DefaultLedger() Ledger {
	return Ledger{
		{Symbol: "ETH", Amount: decimal.NewFromFloat(1.2345)},
		{Symbol: "USDC", Amount: decimal.NewFromFloat(1234.56)},
		{Symbol: "WBTC", Amount: decimal.NewFromFloat(0.0567)},
		{Symbol: "BLUR", Amount: decimal.NewFromInt(4200)},
		{Symbol: "ATOM", Amount: decimal.NewFromInt(150)},
		{Symbol: "OKB", Amount: decimal.NewFromInt(100)},
		{Symbol: "GMX", Amount: decimal.NewFromInt(100)},
		{Symbol: "LUNA", Amount: decimal.NewFromInt(10000)},
	}
}

// Get returns the balance for a symbol (case-insensitive). Symbols
// absent from the ledger are implicitly zero.
func (l Ledger) Get(symbol string) decimal.Decimal {
	for _, b := range l {
		if strings.EqualFold(b.Symbol, symbol) {
			return b.Amount
		}
	}
	return decimal.Zero
}

// ApplySwap debits amountIn from fromSymbol (clamped at zero) and
// credits amountOut to toSymbol (creating the entry if absent),
// returning a new ledger. The operation is unconditional: it does not
// re-check prices, does not reject fromSymbol == toSymbol (the debit
// and credit net out), and does not verify sufficient funds beyond the
// zero clamp.
func (l Ledger) ApplySwap(fromSymbol string, amountIn decimal.Decimal, toSymbol string, amountOut decimal.Decimal) Ledger {
	next := make(Ledger, len(l))
	copy(next, l)

	next = next.adjust(fromSymbol, amountIn.Neg())
	next = next.adjust(toSymbol, amountOut)
	return next
}

// adjust applies a signed delta to a symbol's balance, clamping the
// result at zero and appending a new entry when the symbol is unknown.
func (l Ledger) adjust(symbol string, delta decimal.Decimal) Ledger {
	for i, b := range l {
		if strings.EqualFold(b.Symbol, symbol) {
			l[i].Amount = clampZero(b.Amount.Add(delta))
			return l
		}
	}
	return append(l, Balance{Symbol: symbol, Amount: clampZero(delta)})
}

func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
