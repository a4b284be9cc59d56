// Package metrics exposes prometheus counters for the storefront.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestTotal counts HTTP requests by method, route and status.
	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kickswap_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kickswap_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	// SearchTotal counts browse queries by which criteria were used.
	SearchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kickswap_listing_searches_total",
			Help: "Listing searches by criterion",
		},
		[]string{"criterion"},
	)
	SearchResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "kickswap_listing_search_results",
			Help:    "Number of listings returned per search",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
		},
	)
	// OperationsTotal counts storefront writes (listing_create, offer_create, ...).
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kickswap_operations_total",
			Help: "Storefront write operations",
		},
		[]string{"operation", "status"},
	)
)

// Middleware records request count and duration. Routes are labelled by
// their pattern so slugs do not blow up cardinality.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		RequestTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		RequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the prometheus scrape endpoint.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

// Operation records the outcome of a write.
func Operation(name string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	OperationsTotal.WithLabelValues(name, status).Inc()
}

// Search records one browse query and how many listings it returned.
func Search(criteria []string, results int) {
	if len(criteria) == 0 {
		SearchTotal.WithLabelValues("none").Inc()
	}
	for _, c := range criteria {
		SearchTotal.WithLabelValues(c).Inc()
	}
	SearchResults.Observe(float64(results))
}
