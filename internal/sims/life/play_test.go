package life

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func withSpanRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})
	return sr
}

func attrMap(kvs []attribute.KeyValue) map[attribute.Key]attribute.Value {
	m := make(map[attribute.Key]attribute.Value, len(kvs))
	for _, kv := range kvs {
		m[kv.Key] = kv.Value
	}
	return m
}

func TestPlayEmitsSpan(t *testing.T) {
	sr := withSpanRecorder(t)

	w := mustWorld(t, 4, 6)
	if err := w.Play(context.Background(), 3); err != nil {
		t.Fatalf("Play: %v", err)
	}

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("Expected 1 span, got %d", len(spans))
	}
	span := spans[0]
	if span.Name() != "life.Play" {
		t.Fatalf("span name = %q", span.Name())
	}
	attrs := attrMap(span.Attributes())
	checks := map[attribute.Key]int64{
		"life.turns":      3,
		"life.rows":       4,
		"life.cols":       6,
		"life.turn.start": 0,
		"life.turn.end":   3,
	}
	for key, want := range checks {
		if got := attrs[key].AsInt64(); got != want {
			t.Errorf("%s = %d, want %d", key, got, want)
		}
	}
	if span.Status().Code == codes.Error {
		t.Fatal("successful play should not mark the span as failed")
	}
}

func TestPlayRecordsErrorOnSpan(t *testing.T) {
	sr := withSpanRecorder(t)

	w := mustWorld(t, 2, 2)
	if err := w.Play(context.Background(), -2); err == nil {
		t.Fatal("Play(-2) should fail")
	}
	spans := sr.Ended()
	if len(spans) != 1 || spans[0].Status().Code != codes.Error {
		t.Fatalf("Expected one errored span, got %d spans", len(spans))
	}
	if len(spans[0].Events()) == 0 {
		t.Fatal("error should be recorded as a span event")
	}
}
