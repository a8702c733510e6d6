// Package metrics exposes Prometheus instrumentation for the dashboard.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BackendRequests counts calls to the inventory backend by resource
	// and outcome ("ok", an HTTP status code, or "transport").
	BackendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockview_backend_requests_total",
			Help: "Total requests made to the inventory backend",
		},
		[]string{"resource", "status"},
	)

	// SessionLookups counts identity-provider session resolutions.
	SessionLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockview_session_lookups_total",
			Help: "Total session lookups against the identity provider",
		},
		[]string{"status"},
	)

	// DocumentExports counts generated DOCX downloads by collection kind.
	DocumentExports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockview_document_exports_total",
			Help: "Total table-to-document exports served",
		},
		[]string{"kind", "status"},
	)

	// ExportDuration observes time spent building and serializing documents.
	ExportDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stockview_document_export_duration_seconds",
			Help:    "Time taken to build and serialize a document export",
			Buckets: prometheus.DefBuckets,
		},
	)
)
