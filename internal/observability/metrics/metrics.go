package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fieldpro",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fieldpro",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	// UploadRowsProcessed counts normalized spreadsheet rows by outcome
	// (created, failed, skipped).
	UploadRowsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fieldpro",
		Subsystem: "ingest",
		Name:      "upload_rows_total",
		Help:      "Spreadsheet rows processed by outcome.",
	}, []string{"outcome"})

	// UploadBatches counts persisted upsert batches.
	UploadBatches = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "fieldpro",
		Subsystem: "ingest",
		Name:      "upload_batches_total",
		Help:      "Upsert batches executed.",
	})

	// CasesAllocated counts allocation assignments by trigger.
	CasesAllocated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fieldpro",
		Subsystem: "allocation",
		Name:      "cases_allocated_total",
		Help:      "Cases assigned to executives by trigger (upload, manual).",
	}, []string{"trigger"})
)

// Middleware records request counts and latency per matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		httpRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
