package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-devconnector/internal/observability/metrics"
)

// Metrics records request counts, in-flight requests and latency per
// route template, so /post/:post_id stays one series.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method

		metrics.HTTPRequestsTotal.WithLabelValues(method, route).Inc()
		metrics.HTTPRequestsInFlight.Inc()
		start := time.Now()

		c.Next()

		metrics.HTTPRequestsInFlight.Dec()
		statusClass := fmt.Sprintf("%dxx", c.Writer.Status()/100)
		metrics.HTTPRequestDurationSeconds.WithLabelValues(method, route, statusClass).Observe(time.Since(start).Seconds())
	}
}
