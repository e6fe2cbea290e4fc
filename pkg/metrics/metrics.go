// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "foodgram"

// Metrics groups every collector the service exports
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	GRPCRequestsTotal   *prometheus.CounterVec
	GRPCRequestDuration *prometheus.HistogramVec

	RecipesCreated         prometheus.Counter
	RelationChanges        *prometheus.CounterVec
	ShoppingListsGenerated prometheus.Counter
	ShortLinkResolutions   *prometheus.CounterVec
	EventsPublished        *prometheus.CounterVec
}

// New creates the collectors and registers them on reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		GRPCRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "grpc_requests_total",
				Help:      "Total number of gRPC requests",
			},
			[]string{"method", "status_code"},
		),
		GRPCRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "grpc_request_duration_seconds",
				Help:      "Duration of gRPC requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		RecipesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recipes_created_total",
			Help:      "Number of recipes created",
		}),
		RelationChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "relation_changes_total",
				Help:      "Favorite, shopping cart and subscription edges added or removed",
			},
			[]string{"kind", "op"},
		),
		ShoppingListsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shopping_lists_generated_total",
			Help:      "Number of shopping lists rendered",
		}),
		ShortLinkResolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "shortlink_resolutions_total",
				Help:      "Short link lookups by result (cache_hit, db_hit, not_found)",
			},
			[]string{"result"},
		),
		EventsPublished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "events_published_total",
				Help:      "Domain events sent to Kafka by result",
			},
			[]string{"event_type", "result"},
		),
	}

	reg.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.GRPCRequestsTotal,
		m.GRPCRequestDuration,
		m.RecipesCreated,
		m.RelationChanges,
		m.ShoppingListsGenerated,
		m.ShortLinkResolutions,
		m.EventsPublished,
	)
	return m
}

// The recording methods below are no-ops on a nil *Metrics.

// ObserveHTTP records one served HTTP request
func (m *Metrics) ObserveHTTP(method, endpoint, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(method, endpoint).Observe(elapsed.Seconds())
	m.RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
}

// ObserveGRPC records one served gRPC call
func (m *Metrics) ObserveGRPC(method, code string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.GRPCRequestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
	m.GRPCRequestsTotal.WithLabelValues(method, code).Inc()
}

// RecipeCreated counts a stored recipe
func (m *Metrics) RecipeCreated() {
	if m == nil {
		return
	}
	m.RecipesCreated.Inc()
}

// RelationChanged counts an added or removed favorite, cart entry or subscription
func (m *Metrics) RelationChanged(kind, op string) {
	if m == nil {
		return
	}
	m.RelationChanges.WithLabelValues(kind, op).Inc()
}

// ShoppingListGenerated counts a rendered shopping list
func (m *Metrics) ShoppingListGenerated() {
	if m == nil {
		return
	}
	m.ShoppingListsGenerated.Inc()
}

// ShortLinkResolved counts a short link lookup by its result
func (m *Metrics) ShortLinkResolved(result string) {
	if m == nil {
		return
	}
	m.ShortLinkResolutions.WithLabelValues(result).Inc()
}
