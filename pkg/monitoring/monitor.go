package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	CallDispatchCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "surveybot_call_dispatches_total",
			Help: "Outbound call dispatch attempts by result",
		},
		[]string{"result"},
	)

	BrainFallbackCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "surveybot_brain_fallbacks_total",
			Help: "Brain service calls that degraded to their fallback value",
		},
		[]string{"operation"},
	)

	JobRunCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "surveybot_job_runs_total",
			Help: "Scheduler job executions by status",
		},
		[]string{"job", "status"},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(CallDispatchCounter)
	prometheus.MustRegister(BrainFallbackCounter)
	prometheus.MustRegister(JobRunCounter)
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
