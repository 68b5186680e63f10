package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/Learnify/internal/infrastructure/metrics"
	usecasecontract "github.com/mikiasgoitom/Learnify/internal/usecase/contract"
)

// RequestLogger logs each request and records its latency histogram.
func RequestLogger(logger usecasecontract.IAppLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		go metrics.ObserveHTTPRequest(c.Request.Method, route, strconv.Itoa(status), elapsed.Seconds())

		switch {
		case status >= 500:
			logger.Errorf("%s %s -> %d (%s) %v", c.Request.Method, c.Request.URL.Path, status, elapsed, c.Errors.ByType(gin.ErrorTypeAny))
		case status >= 400:
			logger.Warnf("%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, status, elapsed)
		default:
			logger.Debugf("%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, status, elapsed)
		}
	}
}
