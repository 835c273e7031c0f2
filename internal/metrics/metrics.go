// Package metrics provides Prometheus metrics collection for the
// shopping-list service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds all Prometheus metrics for the service. Each collector
// carries its own registry so independent instances never collide.
type Collector struct {
	registry *prometheus.Registry

	// Request metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Engine metrics
	ShoppingListsTotal prometheus.Counter
	IngredientsTotal   prometheus.Counter
}

// New creates a metrics collector with all metrics registered.
func New() *Collector {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Collector{
		registry: registry,

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "barplanner",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests processed",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "barplanner",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"method", "path"},
		),
		ShoppingListsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "barplanner",
				Name:      "shopping_lists_total",
				Help:      "Total number of shopping lists computed",
			},
		),
		IngredientsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "barplanner",
				Name:      "ingredients_total",
				Help:      "Total number of distinct ingredients across computed lists",
			},
		),
	}
}

// ObserveRequest records one completed HTTP request.
func (c *Collector) ObserveRequest(method, path string, status int, duration time.Duration) {
	c.RequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	c.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveShoppingList records one computed shopping list and its size.
func (c *Collector) ObserveShoppingList(ingredients int) {
	c.ShoppingListsTotal.Inc()
	c.IngredientsTotal.Add(float64(ingredients))
}

// Handler exposes the collector's registry in Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
