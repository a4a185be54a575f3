// Package metrics exposes Prometheus counters for the recipe workflow and the
// HTTP surface.
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
	// RecipesSubmittedTotal counts new recipes by their initial status.
	RecipesSubmittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipes_submitted_total",
			Help: "Total number of submitted recipes by initial status",
		},
		[]string{"status"},
	)

	// RecipesModeratedTotal counts moderation decisions.
	RecipesModeratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipes_moderated_total",
			Help: "Total number of moderation decisions",
		},
		[]string{"decision"},
	)

	// RatingsTotal counts rating writes: created, updated or deleted.
	RatingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ratings_total",
			Help: "Total number of rating writes by action",
		},
		[]string{"action"},
	)

	// FavoritesTotal counts favorite additions and removals.
	FavoritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "favorites_total",
			Help: "Total number of favorite changes by action",
		},
		[]string{"action"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

func RecordSubmission(status string) {
	RecipesSubmittedTotal.WithLabelValues(status).Inc()
}

func RecordModeration(decision string) {
	RecipesModeratedTotal.WithLabelValues(decision).Inc()
}

func RecordRating(action string) {
	RatingsTotal.WithLabelValues(action).Inc()
}

func RecordFavorite(action string) {
	FavoritesTotal.WithLabelValues(action).Inc()
}

// Middleware records request counts and latency per matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the default registry.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
