// Package tracer configures the process-wide OpenTelemetry tracer
// provider and trace-context propagation.
//
// NewClient installs the provider globally, so packages that call
// otel.Tracer (such as the search service) emit spans through it
// without holding a reference. With export enabled, spans are batched
// to an OTLP HTTP collector configured through the standard
// OTEL_EXPORTER_OTLP_* environment variables.
//
// The Tracer value also offers carrier helpers for propagating trace
// context across message queues:
//
//	headers := t.GetCarrier(ctx)             // producer side
//	ctx = t.SetCarrierOnContext(ctx, headers) // consumer side
//
// With fx, include tracer.FXModule and supply a tracer.Config; spans
// are flushed on shutdown.
package tracer
