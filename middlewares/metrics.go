package middlewares

import (
	"strconv"
	"time"

	"book-review/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records request counts and latency by route template.
func Metrics() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(ctx.Writer.Status())
		metrics.HTTPRequestsTotal.WithLabelValues(ctx.Request.Method, route, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(ctx.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
