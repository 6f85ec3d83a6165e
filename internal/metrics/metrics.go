// Package metrics defines Prometheus collectors shared across the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CatalogCacheHits tracks catalog list lookups by source (redis/postgres)
	CatalogCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_hits_total",
			Help: "Catalog list lookups by source",
		},
		[]string{"source"},
	)

	// CatalogMutationsTotal tracks catalog mutations by operation and status
	CatalogMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_mutations_total",
			Help: "Catalog mutations by operation and status",
		},
		[]string{"operation", "status"},
	)

	// EnquiriesReceived tracks submitted enquiries by kind (booking/general)
	EnquiriesReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enquiries_received_total",
			Help: "Submitted enquiries by kind",
		},
		[]string{"kind"},
	)

	// LoginAttemptsTotal tracks admin login attempts by outcome
	LoginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_login_attempts_total",
			Help: "Admin login attempts by outcome (success/failure/rate_limited)",
		},
		[]string{"outcome"},
	)
)
