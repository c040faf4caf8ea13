package server

import (
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// amountPattern accepts unsigned decimals only; signs, exponents, and
// partial numbers like "1." never reach the quote engine or ledger.
var amountPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)

func validAmount(arg string) bool {
	return amountPattern.MatchString(arg)
}

func parseIntParam(c *gin.Context, paramName string) (*int, error) {
	arg := c.Query(paramName)
	if arg == "" {
		return nil, nil
	}

	parsed, err := strconv.Atoi(arg)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseDecimalParam(c *gin.Context, paramName string) (*decimal.Decimal, error) {
	arg := c.Query(paramName)
	if arg == "" {
		return nil, nil
	}

	parsed, err := decimal.NewFromString(arg)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
