package tracing

import (
	"context"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestInitTracerDisabled(t *testing.T) {
	tp, err := InitTracer(Config{ServiceName: "foodgram"})
	if err != nil {
		t.Fatalf("InitTracer() error = %v", err)
	}
	if _, ok := tp.(*sdktrace.TracerProvider); ok {
		t.Error("expected a no-op provider when no endpoint is configured")
	}
	if err := Shutdown(context.Background(), tp); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestInitTracerWithEndpoint(t *testing.T) {
	tp, err := InitTracer(Config{
		ServiceName:    "foodgram",
		ServiceVersion: "test",
		JaegerEndpoint: "http://127.0.0.1:1/api/traces",
		SampleRatio:    0.5,
	})
	if err != nil {
		t.Fatalf("InitTracer() error = %v", err)
	}
	if _, ok := tp.(*sdktrace.TracerProvider); !ok {
		t.Fatalf("expected SDK provider, got %T", tp)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = Shutdown(ctx, tp)
}
