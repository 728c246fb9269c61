package observability

import (
	"context"
	"net/http"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.SampleRate != 1 || cfg.Interval != 15*time.Second {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Enabled() {
		t.Error("config without endpoint must be disabled")
	}

	cfg = Config{SampleRate: 0.25, Interval: time.Minute}
	cfg.ApplyDefaults()
	if cfg.SampleRate != 0.25 || cfg.Interval != time.Minute {
		t.Errorf("explicit values overwritten: %+v", cfg)
	}
}

func TestSampler(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{1.0, "AlwaysOnSampler"},
		{0, "AlwaysOffSampler"},
		{0.5, "TraceIDRatioBased{0.5}"},
	}
	for _, tc := range tests {
		if got := sampler(tc.rate).Description(); got != tc.want {
			t.Errorf("sampler(%v) = %q, want %q", tc.rate, got, tc.want)
		}
	}
}

func TestStartClientSpan(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

	_, span := StartClientSpan(context.Background(), Tracer(tp), "GET", "http://example.com/a", "req-1")
	span.End()

	ended := sr.Ended()
	if len(ended) != 1 {
		t.Fatalf("expected 1 span, got %d", len(ended))
	}
	s := ended[0]
	if s.Name() != "HTTP GET" {
		t.Errorf("expected span name 'HTTP GET', got %q", s.Name())
	}
	if s.SpanKind() != trace.SpanKindClient {
		t.Errorf("expected client span kind, got %v", s.SpanKind())
	}
	want := map[attribute.Key]string{
		AttrHTTPMethod: "GET",
		AttrURLFull:    "http://example.com/a",
		AttrRequestID:  "req-1",
	}
	for _, kv := range s.Attributes() {
		if v, ok := want[kv.Key]; ok {
			if kv.Value.AsString() != v {
				t.Errorf("attribute %s = %q, want %q", kv.Key, kv.Value.AsString(), v)
			}
			delete(want, kv.Key)
		}
	}
	if len(want) > 0 {
		t.Errorf("missing attributes: %v", want)
	}
}

func TestInjectHeaders_NoopPropagator(t *testing.T) {
	h := http.Header{}
	InjectHeaders(context.Background(), propagation.HeaderCarrier(h))
	if h.Get("traceparent") != "" {
		t.Errorf("expected no traceparent without an active span, got %q", h.Get("traceparent"))
	}
}

func TestClientMetrics_Noop(t *testing.T) {
	metrics, err := NewClientMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}
	ctx := context.Background()
	metrics.RecordStart(ctx)
	metrics.RecordEnd(ctx, "GET", "ok", 200, 10, 100*time.Millisecond)
}

func TestClientMetrics_NilSafe(t *testing.T) {
	var m *ClientMetrics
	m.RecordStart(context.Background())
	m.RecordEnd(context.Background(), "GET", "timeout", 0, 0, time.Second)
}

func TestClientMetrics_Recorded(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	metrics, err := NewClientMetrics(Meter(mp))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx := context.Background()
	metrics.RecordStart(ctx)
	metrics.RecordEnd(ctx, "POST", "ok", 201, 42, 20*time.Millisecond)
	metrics.RecordStart(ctx)
	metrics.RecordEnd(ctx, "POST", "timeout", 0, 0, time.Second)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}

	sums := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if data, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range data.DataPoints {
					sums[m.Name] += dp.Value
				}
			}
		}
	}

	if sums["fetch.request.total"] != 2 {
		t.Errorf("expected 2 requests, got %d", sums["fetch.request.total"])
	}
	if sums["fetch.request.active"] != 0 {
		t.Errorf("expected 0 active requests, got %d", sums["fetch.request.active"])
	}
	if sums["fetch.response.bytes"] != 42 {
		t.Errorf("expected 42 bytes, got %d", sums["fetch.response.bytes"])
	}
}

func TestSetup(t *testing.T) {
	if _, err := Setup(context.Background(), Config{}); err == nil {
		t.Error("expected an error without endpoint")
	}

	p, err := Setup(context.Background(), Config{
		Endpoint:       "localhost:4318",
		Insecure:       true,
		ServiceName:    "test-service",
		ServiceVersion: "1.0.0",
		Environment:    "development",
	})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if p.Tracer == nil || p.Meter == nil {
		t.Fatal("expected both providers")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	// No collector is listening; only the call matters.
	_ = p.Shutdown(ctx)
}
