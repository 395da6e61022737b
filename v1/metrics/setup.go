package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's isolated Prometheus registry, the HTTP
// server exposing it at /metrics, and the built-in instruments for the
// ingestion and search paths.
//
// Each Metrics instance owns its own registry so that several services
// in one process never collide on metric names.
type Metrics struct {
	// Server exposes the /metrics endpoint for Prometheus scraping.
	Server *http.Server

	// Registry is the isolated Prometheus registry all instruments of
	// this service are registered on.
	Registry *prometheus.Registry

	clipsIngested   *prometheus.CounterVec
	ingestBatches   *prometheus.CounterVec
	searchRequests  *prometheus.CounterVec
	searchDuration  *prometheus.HistogramVec
	thumbnailsTotal *prometheus.CounterVec
}

// NewMetrics builds a Metrics instance with a dedicated registry, a
// constant service label on every instrument, the built-in ingestion
// and search instruments, and an HTTP server for the /metrics endpoint.
//
// When cfg.EnableDefaultCollectors is set, the Go runtime, process, and
// build info collectors are registered as well.
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()

	wrapped := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	m := &Metrics{
		Registry: registry,
	}

	m.clipsIngested = createCounterVec("clips_ingested_total",
		"Clip embedding records processed by the indexer, by outcome", []string{"outcome"})
	m.ingestBatches = createCounterVec("ingest_batches_total",
		"Clip batches consumed from the queue, by acknowledgement", []string{"ack"})
	m.searchRequests = createCounterVec("search_requests_total",
		"Search requests served, by mode and status", []string{"mode", "status"})
	m.searchDuration = createHistogramVec("search_duration_seconds",
		"Search request latency in seconds, by mode", []string{"mode"}, prometheus.DefBuckets)
	m.thumbnailsTotal = createCounterVec("thumbnails_total",
		"Thumbnail extraction attempts, by outcome", []string{"outcome"})

	wrapped.MustRegister(
		m.clipsIngested,
		m.ingestBatches,
		m.searchRequests,
		m.searchDuration,
		m.thumbnailsTotal,
	)

	if cfg.EnableDefaultCollectors {
		wrapped.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	m.Server = &http.Server{
		Addr:    cfg.Address,
		Handler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}
	return m
}
