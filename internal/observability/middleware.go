package observability

import (
	"time"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware returns a Gin middleware that records request
// counts and latency per route. The route template is used rather than
// the raw path so /api/users/42 and /api/users/7 share a series.
func MetricsMiddleware(mp *MetricsProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		if mp == nil || mp.httpRequestsTotal == nil {
			c.Next()
			return
		}

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		mp.httpRequestsActive.Inc()
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		mp.httpRequestsActive.Dec()

		mp.RecordHTTPRequest(c.Request.Method, route, c.Writer.Status(), duration)
	}
}

// RegisterRoutes mounts the scrape endpoint on the engine.
func (mp *MetricsProvider) RegisterRoutes(router *gin.Engine) {
	path := "/metrics"
	if mp.config != nil && mp.config.PrometheusPath != "" {
		path = mp.config.PrometheusPath
	}
	router.GET(path, gin.WrapH(mp.Handler()))
}
