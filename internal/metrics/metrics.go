// Package metrics exposes Prometheus metrics for the HTTP API and the checker.
package metrics

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mrlokans/palindromes/internal/palindrome"
)

// Checker is the subset of palindrome.Checker that InstrumentChecker wraps.
type Checker interface {
	Check(text string, lang palindrome.Language) bool
}

// Metrics holds the collectors registered for the service.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	checksTotal         *prometheus.CounterVec
	checkedRunes        *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with registry.
func NewMetrics(registry *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{registry: registry}

	m.httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	m.httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Time taken for HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	m.checksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "palindrome_checks_total",
			Help: "Total number of palindrome checks",
		},
		[]string{"language", "result"}, // result: palindrome, not_palindrome
	)

	m.checkedRunes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "palindrome_check_input_runes",
			Help:    "Length of checked texts in runes",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8), // 1 to ~16k
		},
		[]string{"language"},
	)

	for _, c := range m.collectors() {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.checksTotal,
		m.checkedRunes,
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		ErrorLog:      log.New(os.Stderr, "metrics handler: ", log.LstdFlags),
		ErrorHandling: promhttp.HTTPErrorOnError,
	})
}

// Middleware records count and latency of every request. Unmatched routes are
// grouped under a single path label to keep cardinality bounded.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method

		m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

// RecordCheck counts one palindrome check.
func (m *Metrics) RecordCheck(lang palindrome.Language, runes int, isPalindrome bool) {
	result := "not_palindrome"
	if isPalindrome {
		result = "palindrome"
	}
	m.checksTotal.WithLabelValues(lang.String(), result).Inc()
	m.checkedRunes.WithLabelValues(lang.String()).Observe(float64(runes))
}

// InstrumentChecker returns a Checker that records every result before returning it.
func (m *Metrics) InstrumentChecker(next Checker) Checker {
	return &instrumentedChecker{next: next, metrics: m}
}

type instrumentedChecker struct {
	next    Checker
	metrics *Metrics
}

func (c *instrumentedChecker) Check(text string, lang palindrome.Language) bool {
	result := c.next.Check(text, lang)
	c.metrics.RecordCheck(lang, len([]rune(text)), result)
	return result
}
