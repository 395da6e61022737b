package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector abstracts the service's metric operations. It is
// implemented by the concrete *Metrics type.
type Collector interface {
	// CountClipsIngested adds to the ingested-clip counter for an
	// outcome of "indexed", "skipped", or "failed".
	CountClipsIngested(outcome string, n int)

	// CountIngestBatch increments the consumed-batch counter for an
	// acknowledgement of "ack", "requeue", or "drop".
	CountIngestBatch(ack string)

	// CountSearchRequest increments the search counter for a mode and
	// a status of "ok" or "error".
	CountSearchRequest(mode, status string)

	// RecordSearchDuration observes the elapsed time since start for a
	// search mode. Use with defer at the top of the request path.
	RecordSearchDuration(start time.Time, mode string)

	// CountThumbnails adds to the thumbnail counter for an outcome of
	// "generated" or "failed".
	CountThumbnails(outcome string, n int)

	// CreateCounter registers and returns a new CounterVec.
	CreateCounter(name, help string, labels []string) *prometheus.CounterVec

	// CreateHistogram registers and returns a new HistogramVec.
	CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec

	// CreateGauge registers and returns a new GaugeVec.
	CreateGauge(name, help string, labels []string) *prometheus.GaugeVec
}
