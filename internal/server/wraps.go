package server

import (
	"errors"
	"net/http"
	"os"
	"time"

	"swap_go/internal/domain"
	"swap_go/internal/infra"

	"github.com/gin-gonic/gin"
)

type responseProvenance struct {
	Hostname  string `json:"hostname"`
	ServeTime int    `json:"serveTime"`
}

type fullResponse struct {
	Data     any                `json:"data"`
	Metadata responseProvenance `json:"provenance"`
}

func wrapDataResp(c *gin.Context, result any) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "getHostnameError"
	}

	prov := responseProvenance{
		Hostname:  hostname,
		ServeTime: int(time.Now().UnixMilli()),
	}

	c.JSON(http.StatusOK, fullResponse{Data: result, Metadata: prov})
}

// wrapStoreErrResp maps ledger failures: store outages report as a bad
// gateway so callers can distinguish them from rejected input.
func wrapStoreErrResp(c *gin.Context, err error) {
	infra.GlobalMetrics.RecordStoreError()
	if errors.Is(err, domain.ErrStoreUnavailable) {
		c.String(http.StatusBadGateway, err.Error())
		return
	}
	c.String(http.StatusInternalServerError, err.Error())
}

func wrapMissingParams(c *gin.Context, param string) {
	c.String(http.StatusUnprocessableEntity, "Missing parameter: "+param)
}

func wrapBadParam(c *gin.Context, param string) {
	c.String(http.StatusUnprocessableEntity, "Invalid parameter: "+param)
}

// CORSMiddleware allows browser clients from any origin.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
