// Package observability wires OpenTelemetry tracing and metrics for
// outgoing fetch calls.
//
//	p, err := observability.Setup(ctx, observability.Config{Endpoint: "localhost:4318", Insecure: true})
//	defer p.Shutdown(ctx)
//
//	metrics, err := observability.NewClientMetrics(observability.Meter(p.Meter))
//	client, err := httpclient.New(
//	    httpclient.WithTracerProvider(p.Tracer),
//	    httpclient.WithMetrics(metrics),
//	)
package observability
