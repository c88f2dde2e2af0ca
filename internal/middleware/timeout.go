package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Timeout bounds request handling. Slow upstream geocoder calls see
// their context cancelled and the client gets a 504 instead of
// hanging.
func Timeout(timeout time.Duration, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		// buffered so the handler goroutine can finish after a timeout
		finished := make(chan struct{}, 1)

		go func() {
			// the recovery middleware sits on the other side of this
			// goroutine and cannot catch panics raised in it
			defer func() {
				if err := recover(); err != nil {
					logger.WithFields(logrus.Fields{
						"request_id": GetRequestID(c),
						"method":     c.Request.Method,
						"path":       c.Request.URL.Path,
						"panic":      err,
					}).Error("Panic recovered")

					c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
						"error":      "Internal server error",
						"request_id": GetRequestID(c),
						"message":    "An unexpected error occurred. Please try again later.",
					})
				}
				finished <- struct{}{}
			}()
			c.Next()
		}()

		select {
		case <-finished:
			return
		case <-ctx.Done():
			logger.WithFields(logrus.Fields{
				"request_id": GetRequestID(c),
				"method":     c.Request.Method,
				"path":       c.Request.URL.Path,
				"timeout":    timeout.String(),
			}).Warn("Request timeout")

			c.AbortWithStatusJSON(http.StatusGatewayTimeout, gin.H{
				"error":      "Request timeout",
				"request_id": GetRequestID(c),
				"message":    "Request took too long to process",
			})
		}
	}
}
