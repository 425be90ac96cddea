package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// 指标统一挂在 workout_http_* 命名空间下，按路由模板而非原始路径打点
var (
	reqTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "workout",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Requests handled, by route template, method and status",
		},
		[]string{"route", "method", "status"},
	)
	reqDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "workout",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Request latency, by route template and method",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
)

func init() { prometheus.MustRegister(reqTotal, reqDuration) }

// Metrics 请求计数 + 时延直方图；未匹配到路由的请求归并到 unmatched
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		reqTotal.WithLabelValues(route, c.Request.Method, status).Inc()
		reqDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
