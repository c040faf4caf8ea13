package domain

import "github.com/shopspring/decimal"

// Simulated pool liquidity in USD. The price impact heuristic below is
// calibrated against this constant; it is a stand-in for real AMM curve
// math, not derived from one.
var liquidityUSD = decimal.NewFromInt(500_000)

var (
	one         = decimal.NewFromInt(1)
	hundred     = decimal.NewFromInt(100)
	tenThousand = decimal.NewFromInt(10_000)
	maxImpact   = decimal.NewFromInt(99)
)

// SwapSettings holds the user-tunable quoting parameters.
type SwapSettings struct {
	SlippageBps         int64           `json:"slippage_bps"`           // Basis points (10000 = 100%)
	PriceImpactLimitPct decimal.Decimal `json:"price_impact_limit_pct"` // Percent
}

// DefaultSwapSettings returns the session defaults: 0.5% slippage
// tolerance, 5% price impact limit.
func DefaultSwapSettings() SwapSettings {
	return SwapSettings{
		SlippageBps:         50,
		PriceImpactLimitPct: decimal.NewFromInt(5),
	}
}

// Quote is the derived, immutable result of a quote computation.
type Quote struct {
	OutputAmount       decimal.Decimal `json:"output_amount"`        // Impact-adjusted output
	MinimumReceived    decimal.Decimal `json:"minimum_received"`     // After slippage tolerance
	EffectiveRate      decimal.Decimal `json:"effective_rate"`       // priceOf(to) / priceOf(from)
	PriceImpactPct     decimal.Decimal `json:"price_impact_pct"`     // Simulated, capped at 99
	ExceedsImpactLimit bool            `json:"exceeds_impact_limit"` // Strictly above the configured limit
	USDValueIn         decimal.Decimal `json:"usd_value_in"`
}

// ComputeQuote computes a swap quote from raw string input.
// Returns nil when no quote is available: unparseable, zero or negative
// amounts, and symbols without a known positive price all collapse to
// the nil result rather than an error.
func ComputeQuote(book *PriceBook, fromSymbol, toSymbol, amountIn string, settings SwapSettings) *Quote {
	if amountIn == "" {
		return nil
	}
	amount, err := decimal.NewFromString(amountIn)
	if err != nil {
		return nil
	}
	return ComputeQuoteAmount(book, fromSymbol, toSymbol, amount, settings)
}

// ComputeQuoteAmount is the decimal-typed form of ComputeQuote.
//
// The impact penalty grows faster than linearly with trade size:
// proportion p of the simulated liquidity costs min(99, p*100*(1+p))
// percent of the output. Impact is applied to the input leg's USD size
// only, so quoting A->B and feeding the output back into B->A does not
// return to the original amount. That asymmetry is intended.
func ComputeQuoteAmount(book *PriceBook, fromSymbol, toSymbol string, amount decimal.Decimal, settings SwapSettings) *Quote {
	if !amount.IsPositive() {
		return nil
	}
	fromPrice, ok := book.Price(fromSymbol)
	if !ok {
		return nil
	}
	toPrice, ok := book.Price(toSymbol)
	if !ok {
		return nil
	}

	usdValueIn := amount.Mul(fromPrice)
	rawOut := usdValueIn.Div(toPrice)

	proportion := usdValueIn.Div(liquidityUSD)
	priceImpactPct := decimal.Min(maxImpact, proportion.Mul(hundred).Mul(one.Add(proportion)))

	outputAmount := rawOut.Mul(one.Sub(priceImpactPct.Div(hundred)))
	minimumReceived := outputAmount.Mul(one.Sub(decimal.NewFromInt(settings.SlippageBps).Div(tenThousand)))

	return &Quote{
		OutputAmount:       outputAmount,
		MinimumReceived:    minimumReceived,
		EffectiveRate:      toPrice.Div(fromPrice),
		PriceImpactPct:     priceImpactPct,
		ExceedsImpactLimit: priceImpactPct.GreaterThan(settings.PriceImpactLimitPct),
		USDValueIn:         usdValueIn,
	}
}
