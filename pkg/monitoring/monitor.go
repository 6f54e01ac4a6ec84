package monitoring

import (
	"strconv"
	"sync"
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
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// TestsCacheLookups считает обращения к кешу списка тестов (result=hit|miss|error)
	TestsCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_tests_cache_lookups_total",
			Help: "Lookups of the cached test list",
		},
		[]string{"result"},
	)

	// AttemptsRecorded считает сохраненные попытки прохождения тестов
	AttemptsRecorded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "quiz_attempts_recorded_total",
			Help: "History records created",
		},
	)
)

var registerOnce sync.Once

// Init регистрирует метрики в реестре по умолчанию; повторные вызовы безопасны
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestCounter, RequestDuration, TestsCacheLookups, AttemptsRecorded)
	})
}

// MetricsMiddleware собирает количество и длительность запросов по шаблону маршрута
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(time.Since(start).Seconds())
	}
}

// PrometheusHandler отдает метрики в формате Prometheus
func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
