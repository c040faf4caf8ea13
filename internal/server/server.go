package server

import (
	"context"
	"errors"
	"net/http"

	"swap_go/internal/domain"
	"swap_go/internal/infra"
	"swap_go/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// APIWebServer exposes the quote engine and balance ledger over HTTP.
type APIWebServer struct {
	Swaps           *service.SwapService
	Ledger          *service.LedgerService
	DefaultSettings domain.SwapSettings
}

// Router builds the gin engine with all routes registered.
func (s *APIWebServer) Router() *gin.Engine {
	r := gin.Default()
	r.Use(CORSMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/prices", s.queryPrices)
	r.GET("/quote", s.queryQuote)
	r.GET("/balances", s.queryBalances)
	r.POST("/swap", s.applySwap)
	r.POST("/portfolio", s.buildPortfolio)
	r.GET("/metrics", s.queryMetrics)
	return r
}

// Serve runs the HTTP server until the context is cancelled.
func (s *APIWebServer) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Router()}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		return srv.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}

func (s *APIWebServer) queryPrices(c *gin.Context) {
	wrapDataResp(c, s.Swaps.Prices())
}

func (s *APIWebServer) queryQuote(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	amountIn := c.Query("amountIn")

	if from == "" {
		wrapMissingParams(c, "from")
		return
	}
	if to == "" {
		wrapMissingParams(c, "to")
		return
	}
	if amountIn == "" {
		wrapMissingParams(c, "amountIn")
		return
	}
	if !validAmount(amountIn) {
		wrapBadParam(c, "amountIn")
		return
	}

	settings := s.DefaultSettings
	if arg, err := parseIntParam(c, "slippageBps"); err != nil || (arg != nil && *arg < 0) {
		wrapBadParam(c, "slippageBps")
		return
	} else if arg != nil {
		settings.SlippageBps = int64(*arg)
	}
	if arg, err := parseDecimalParam(c, "impactLimitPct"); err != nil || (arg != nil && arg.IsNegative()) {
		wrapBadParam(c, "impactLimitPct")
		return
	} else if arg != nil {
		settings.PriceImpactLimitPct = *arg
	}

	session := service.SwapSession{From: from, To: to, AmountIn: amountIn, Settings: settings}
	quote := s.Swaps.Quote(session)
	infra.GlobalMetrics.RecordQuote(quote != nil)

	if quote == nil {
		// Absence of a quote is a domain outcome, not a server failure
		c.JSON(http.StatusOK, gin.H{"quote": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"quote": quote})
}

func (s *APIWebServer) queryBalances(c *gin.Context) {
	ledger, err := s.Ledger.Balances(c.Request.Context())
	if err != nil {
		wrapStoreErrResp(c, err)
		return
	}
	wrapDataResp(c, ledger)
}

type swapRequest struct {
	FromSymbol string `json:"from_symbol" binding:"required"`
	ToSymbol   string `json:"to_symbol" binding:"required"`
	AmountIn   string `json:"amount_in" binding:"required"`
	AmountOut  string `json:"amount_out" binding:"required"`
}

func (s *APIWebServer) applySwap(c *gin.Context) {
	var req swapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusUnprocessableEntity, "Invalid request body")
		return
	}
	if !validAmount(req.AmountIn) {
		wrapBadParam(c, "amount_in")
		return
	}
	if !validAmount(req.AmountOut) {
		wrapBadParam(c, "amount_out")
		return
	}

	amountIn, _ := decimal.NewFromString(req.AmountIn)
	amountOut, _ := decimal.NewFromString(req.AmountOut)

	ledger, receipt, err := s.Ledger.ApplySwap(c.Request.Context(), req.FromSymbol, amountIn, req.ToSymbol, amountOut)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAmount) || errors.Is(err, domain.ErrInvalidSymbol) {
			c.String(http.StatusUnprocessableEntity, err.Error())
			return
		}
		wrapStoreErrResp(c, err)
		return
	}
	infra.GlobalMetrics.RecordSwapApplied()

	c.JSON(http.StatusOK, gin.H{"receipt": receipt, "balances": ledger})
}

type portfolioRequest struct {
	Balances []domain.WalletBalance `json:"balances"`
}

func (s *APIWebServer) buildPortfolio(c *gin.Context) {
	var req portfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	rows := domain.BuildPortfolioRows(req.Balances, s.Swaps.Book())
	wrapDataResp(c, rows)
}

func (s *APIWebServer) queryMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, infra.GlobalMetrics.Snapshot())
}
