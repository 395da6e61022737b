package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CountClipsIngested adds to the ingested-clip counter for an outcome.
func (m *Metrics) CountClipsIngested(outcome string, n int) {
	m.clipsIngested.WithLabelValues(outcome).Add(float64(n))
}

// CountIngestBatch increments the consumed-batch counter.
func (m *Metrics) CountIngestBatch(ack string) {
	m.ingestBatches.WithLabelValues(ack).Inc()
}

// CountSearchRequest increments the search counter for a mode and status.
func (m *Metrics) CountSearchRequest(mode, status string) {
	m.searchRequests.WithLabelValues(mode, status).Inc()
}

// RecordSearchDuration observes the elapsed time since start.
// Example: defer m.RecordSearchDuration(time.Now(), "hybrid")
func (m *Metrics) RecordSearchDuration(start time.Time, mode string) {
	m.searchDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())
}

// CountThumbnails adds to the thumbnail counter for an outcome.
func (m *Metrics) CountThumbnails(outcome string, n int) {
	m.thumbnailsTotal.WithLabelValues(outcome).Add(float64(n))
}

// CreateCounter registers and returns a new CounterVec.
func (m *Metrics) CreateCounter(name, help string, labels []string) *prometheus.CounterVec {
	counter := createCounterVec(name, help, labels)
	m.Registry.MustRegister(counter)
	return counter
}

// CreateHistogram registers and returns a new HistogramVec.
func (m *Metrics) CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	hist := createHistogramVec(name, help, labels, buckets)
	m.Registry.MustRegister(hist)
	return hist
}

// CreateGauge registers and returns a new GaugeVec.
func (m *Metrics) CreateGauge(name, help string, labels []string) *prometheus.GaugeVec {
	gauge := createGaugeVec(name, help, labels)
	m.Registry.MustRegister(gauge)
	return gauge
}

func createCounterVec(name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: name,
			Help: help,
		},
		labels,
	)
}

func createHistogramVec(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    name,
			Help:    help,
			Buckets: buckets,
		},
		labels,
	)
}

func createGaugeVec(name, help string, labels []string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: name,
			Help: help,
		},
		labels,
	)
}
