package middleware

import (
	"strconv"
	"time"

	"recipe-suggester/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics 記錄每個路由的請求耗時
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// 使用路由樣板避免標籤基數失控
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.HTTPRequestDuration.
			WithLabelValues(path, c.Request.Method, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
