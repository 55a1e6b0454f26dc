// Package metrics declares the Prometheus collectors of the book review
// service. They register with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bookreview"

var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status code.",
	},
	[]string{"method", "route", "status"},
)

var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// AuthFailuresTotal counts rejected credential checks.
//   - reason: missing, malformed, invalid
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Rejected authentication attempts by reason.",
	},
	[]string{"reason"},
)

var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Users registered through the registration form.",
	},
)

var ReviewsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reviews_created_total",
		Help:      "Reviews accepted and stored.",
	},
)

// CatalogRequestsTotal counts calls to the book catalog.
//   - operation: search, fetch
//   - result: ok, unavailable, malformed
var CatalogRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_requests_total",
		Help:      "Calls to the external book catalog by operation and result.",
	},
	[]string{"operation", "result"},
)
