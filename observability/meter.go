package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

func newMeterProvider(ctx context.Context, cfg Config, res *resource.Resource) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}
	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(cfg.Interval))
	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader), sdkmetric.WithResource(res)), nil
}

// Meter returns the fetchkit meter from mp, or from the global provider when mp is nil.
func Meter(mp metric.MeterProvider) metric.Meter {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	return mp.Meter(InstrumentationName)
}

// ClientMetrics holds the instruments recorded for every fetch call.
type ClientMetrics struct {
	requestTotal    metric.Int64Counter
	requestDuration metric.Float64Histogram
	requestActive   metric.Int64UpDownCounter
	bytesReceived   metric.Int64Counter
}

// NewClientMetrics creates the client instruments on meter.
func NewClientMetrics(meter metric.Meter) (*ClientMetrics, error) {
	requestTotal, err := meter.Int64Counter("fetch.request.total",
		metric.WithDescription("Completed fetch calls by method and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating fetch.request.total counter: %w", err)
	}

	requestDuration, err := meter.Float64Histogram("fetch.request.duration",
		metric.WithDescription("Duration of fetch calls in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating fetch.request.duration histogram: %w", err)
	}

	requestActive, err := meter.Int64UpDownCounter("fetch.request.active",
		metric.WithDescription("Fetch calls currently in flight"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating fetch.request.active gauge: %w", err)
	}

	bytesReceived, err := meter.Int64Counter("fetch.response.bytes",
		metric.WithDescription("Response body bytes received"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating fetch.response.bytes counter: %w", err)
	}

	return &ClientMetrics{
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
		requestActive:   requestActive,
		bytesReceived:   bytesReceived,
	}, nil
}

// RecordStart increments the in-flight count.
func (m *ClientMetrics) RecordStart(ctx context.Context) {
	if m == nil {
		return
	}
	m.requestActive.Add(ctx, 1)
}

// RecordEnd decrements the in-flight count and records a finished call.
// outcome is "ok" or the error kind.
func (m *ClientMetrics) RecordEnd(ctx context.Context, method, outcome string, status int, bytes int64, duration time.Duration) {
	if m == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String(AttrHTTPMethod, method),
		attribute.String(AttrOutcome, outcome),
	}
	if status > 0 {
		attrs = append(attrs, attribute.Int(AttrHTTPStatus, status))
	}
	m.requestActive.Add(ctx, -1)
	m.requestTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.requestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String(AttrHTTPMethod, method),
	))
	if bytes > 0 {
		m.bytesReceived.Add(ctx, bytes, metric.WithAttributes(
			attribute.String(AttrHTTPMethod, method),
		))
	}
}
