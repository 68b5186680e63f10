package middleware

import (
	"github.com/didip/tollbooth/v7"
	"github.com/didip/tollbooth/v7/limiter"
	"github.com/gin-gonic/gin"
)

// RateLimiter applies a tollbooth limiter to every request.
func RateLimiter(lmt *limiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if httpErr := tollbooth.LimitByRequest(lmt, c.Writer, c.Request); httpErr != nil {
			c.Data(httpErr.StatusCode, lmt.GetMessageContentType(), []byte(httpErr.Message))
			c.Abort()
			return
		}
		c.Next()
	}
}
