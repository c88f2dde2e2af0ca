package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/voxatlas/weather-location-backend/pkg/metrics"
)

// Metrics records Prometheus counters and latency histograms per
// request. The route template is used as the endpoint label so
// parameterized paths do not explode the cardinality.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		m.RecordHTTPRequest(c.Request.Method, endpoint, c.Writer.Status(), time.Since(start))
	}
}
