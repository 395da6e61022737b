package tracer

import (
	"context"
	"testing"

	traceSpan "go.opentelemetry.io/otel/trace"
)

type nopLogger struct{}

func (nopLogger) Info(string, error, ...map[string]interface{})  {}
func (nopLogger) Error(string, error, ...map[string]interface{}) {}
func (nopLogger) Fatal(string, error, ...map[string]interface{}) {}

func newTestTracer() *Tracer {
	cfg := DefaultConfig().WithServiceName("clipsearch-test")
	return NewClient(cfg, nopLogger{})
}

func TestStartSpanProducesValidContext(t *testing.T) {
	tr := newTestTracer()

	ctx, span := tr.StartSpan(context.Background(), "test-op")
	defer span.End()

	sc := traceSpan.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		t.Fatal("span context is not valid")
	}
}

func TestCarrierRoundTripPreservesTraceID(t *testing.T) {
	tr := newTestTracer()

	ctx, span := tr.StartSpan(context.Background(), "producer-op")
	defer span.End()

	carrier := tr.GetCarrier(ctx)
	if carrier["traceparent"] == "" {
		t.Fatal("carrier missing traceparent header")
	}

	restored := tr.SetCarrierOnContext(context.Background(), carrier)
	got := traceSpan.SpanContextFromContext(restored)
	want := traceSpan.SpanContextFromContext(ctx)
	if got.TraceID() != want.TraceID() {
		t.Errorf("trace id = %s, want %s", got.TraceID(), want.TraceID())
	}
}

func TestGetCarrierWithoutSpanIsEmpty(t *testing.T) {
	tr := newTestTracer()
	if carrier := tr.GetCarrier(context.Background()); len(carrier) != 0 {
		t.Errorf("carrier without span = %v, want empty", carrier)
	}
}
