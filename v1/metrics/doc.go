// Package metrics exposes Prometheus instruments for the clip ingestion
// and search paths.
//
// Each Metrics instance owns an isolated registry with a constant
// "service" label, so several services can run in one process or share
// one Prometheus cluster without metric collisions. The registry is
// served at /metrics by a dedicated HTTP server.
//
// Built-in instruments cover the hot paths:
//
//	clips_ingested_total{outcome}     records written, skipped, or failed
//	ingest_batches_total{ack}         consumed batches by acknowledgement
//	search_requests_total{mode,status} search traffic by mode
//	search_duration_seconds{mode}     search latency histogram
//	thumbnails_total{outcome}         thumbnail extraction outcomes
//
// Additional instruments register through CreateCounter,
// CreateHistogram, and CreateGauge, or directly on the Registry.
//
// Usage:
//
//	m := metrics.NewMetrics(metrics.DefaultConfig())
//	go m.Server.ListenAndServe()
//
//	m.CountSearchRequest("hybrid", "ok")
//	defer m.RecordSearchDuration(time.Now(), "hybrid")
//
// With fx, include metrics.FXModule and supply a metrics.Config; the
// module runs the server for the application's lifetime.
package metrics
