package observability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/fetchkit/logger"
)

// Config selects where fetch telemetry is exported. Tracing and metrics
// share one OTLP/HTTP collector.
//
//	telemetry:
//	  endpoint: localhost:4318
//	  sample_rate: 0.25
type Config struct {
	// Endpoint is the collector host:port. Empty disables export.
	Endpoint       string        `yaml:"endpoint" mapstructure:"endpoint" json:"endpoint"`
	Insecure       bool          `yaml:"insecure" mapstructure:"insecure" json:"insecure"`
	SampleRate     float64       `yaml:"sample_rate" mapstructure:"sample_rate" json:"sample_rate" validate:"gte=0,lte=1"`
	Interval       time.Duration `yaml:"interval" mapstructure:"interval" json:"interval" validate:"gte=0"`
	ServiceName    string        `yaml:"-" mapstructure:"-" json:"-"`
	ServiceVersion string        `yaml:"-" mapstructure:"-" json:"-"`
	Environment    string        `yaml:"-" mapstructure:"-" json:"-"`
}

// ApplyDefaults samples every call and exports metrics every 15s.
func (c *Config) ApplyDefaults() {
	if c.SampleRate == 0 {
		c.SampleRate = 1
	}
	if c.Interval == 0 {
		c.Interval = 15 * time.Second
	}
}

// Enabled reports whether an endpoint is configured.
func (c Config) Enabled() bool { return c.Endpoint != "" }

// Providers are the installed tracer and meter providers.
type Providers struct {
	Tracer *sdktrace.TracerProvider
	Meter  *sdkmetric.MeterProvider
}

// Shutdown flushes and stops both providers.
func (p *Providers) Shutdown(ctx context.Context) error {
	return errors.Join(p.Tracer.Shutdown(ctx), p.Meter.Shutdown(ctx))
}

// Setup creates OTLP/HTTP exporters for cfg, installs the resulting
// providers and the W3C trace-context propagator globally, and returns them.
func Setup(ctx context.Context, cfg Config) (*Providers, error) {
	cfg.ApplyDefaults()
	if !cfg.Enabled() {
		return nil, errors.New("observability: no export endpoint configured")
	}
	res, err := resource.Merge(resource.Default(), resource.NewSchemaless(
		attribute.String(AttrServiceName, cfg.ServiceName),
		attribute.String(AttrServiceVersion, cfg.ServiceVersion),
		attribute.String(AttrEnvironment, cfg.Environment),
	))
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	tp, err := newTracerProvider(ctx, cfg, res)
	if err != nil {
		return nil, err
	}
	mp, err := newMeterProvider(ctx, cfg, res)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.Get("observability").Debug("telemetry export enabled", logger.Fields(
		"endpoint", cfg.Endpoint,
		"sample_rate", cfg.SampleRate,
		"interval", cfg.Interval.String(),
	))
	return &Providers{Tracer: tp, Meter: mp}, nil
}
