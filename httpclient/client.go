package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptrace"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/fetchkit/logger"
	"github.com/kbukum/fetchkit/observability"
)

// FetchResult is the outcome of a successful call.
type FetchResult struct {
	// Data is parsed JSON (any) for JSON responses, the decoded text otherwise.
	Data any
	// Response is the underlying response. Its body has been fully consumed.
	Response *http.Response
	// Message is the HTTP status text.
	Message string
	// Code is the HTTP status code.
	Code int

	text string
}

// Text returns the decoded body text.
func (r *FetchResult) Text() string {
	return r.text
}

// Call bundles the arguments of one fetch for Execute.
type Call struct {
	// Service, if set, supplies the URL, method and content type.
	Service *ServiceDescriptor
	// URL is used when Service is nil.
	URL     string
	Payload any
	Config  *RequestConfig
}

// Option configures a Client.
type Option func(*Client)

// WithTransport replaces the default HTTPTransport.
func WithTransport(t Transport) Option {
	return func(c *Client) { c.transport = t }
}

// WithTransportConfig builds the default transport from cfg.
func WithTransportConfig(cfg TransportConfig) Option {
	return func(c *Client) { c.transportCfg = &cfg }
}

// WithLogger sets the logger used for call diagnostics.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithTracerProvider enables client spans from tp.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) { c.tracer = observability.Tracer(tp) }
}

// WithMetrics records call metrics.
func WithMetrics(m *observability.ClientMetrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithRequestID sends the per-call request id in the named header
// (X-Request-Id when name is empty) unless the call already sets it.
func WithRequestID(name string) Option {
	if name == "" {
		name = "X-Request-Id"
	}
	return func(c *Client) { c.requestIDHeader = name }
}

// WithName names the client in logs and health reports.
func WithName(name string) Option {
	return func(c *Client) { c.name = name }
}

// WithDefaults seeds the client's process-wide defaults.
func WithDefaults(cfg RequestConfig) Option {
	return func(c *Client) { c.Configure(cfg) }
}

// Client issues fetch calls. It is safe for concurrent use; each call works
// on its own merged copy of the configuration.
type Client struct {
	name            string
	transport       Transport
	transportCfg    *TransportConfig
	defaults        atomic.Pointer[RequestConfig]
	log             *logger.Logger
	tracer          trace.Tracer
	metrics         *observability.ClientMetrics
	requestIDHeader string
}

// New creates a Client.
func New(opts ...Option) (*Client, error) {
	c := &Client{name: "httpclient"}
	def := DefaultConfig()
	c.defaults.Store(&def)

	for _, opt := range opts {
		opt(c)
	}

	if c.transport == nil {
		cfg := TransportConfig{}
		if c.transportCfg != nil {
			cfg = *c.transportCfg
		}
		t, err := NewTransport(cfg)
		if err != nil {
			return nil, err
		}
		c.transport = t
	}
	if c.log == nil {
		c.log = logger.Get(c.name)
	}
	if c.tracer == nil {
		c.tracer = observability.Tracer(nil)
	}
	return c, nil
}

// Name returns the client name.
func (c *Client) Name() string {
	return c.name
}

// IsAvailable reports whether the client can send requests.
func (c *Client) IsAvailable(_ context.Context) bool {
	return c != nil && c.transport != nil
}

// Configure merges defaults into the client's process-wide defaults.
// Nil fields keep their current values. Calls already in flight are unaffected.
func (c *Client) Configure(defaults RequestConfig) {
	for {
		cur := c.defaults.Load()
		next := cur.Merge(&defaults)
		if c.defaults.CompareAndSwap(cur, &next) {
			return
		}
	}
}

// Defaults returns a copy of the current process-wide defaults.
func (c *Client) Defaults() RequestConfig {
	return c.defaults.Load().Clone()
}

// Request calls the endpoint described by svc. Caller overrides in cfg take
// precedence over the descriptor's method and content type.
func (c *Client) Request(ctx context.Context, svc ServiceDescriptor, payload any, cfg *RequestConfig) (*FetchResult, error) {
	layer := svc.layer()
	merged := layer.Merge(cfg)
	return c.Send(ctx, svc.URL, payload, &merged)
}

// Execute runs a Call.
func (c *Client) Execute(ctx context.Context, call Call) (*FetchResult, error) {
	if call.Service != nil {
		return c.Request(ctx, *call.Service, call.Payload, call.Config)
	}
	return c.Send(ctx, call.URL, call.Payload, call.Config)
}

// Send calls rawURL with payload. cfg overrides the process-wide defaults
// for this call only.
func (c *Client) Send(ctx context.Context, rawURL string, payload any, cfg *RequestConfig) (*FetchResult, error) {
	merged := c.defaults.Load().Merge(cfg)
	if merged.Before != nil {
		merged.Before(&merged)
	}

	requestID := uuid.NewString()
	method := string(merged.method())
	log := c.log.WithFields(logger.Fields(logger.FieldRequestID, requestID, logger.FieldMethod, method))

	ctx, span := observability.StartClientSpan(ctx, c.tracer, method, rawURL, requestID)
	c.metrics.RecordStart(ctx)
	start := time.Now()

	treq, err := BuildRequest(rawURL, &merged, payload)
	if err == nil {
		if c.requestIDHeader != "" && treq.Header.Get(c.requestIDHeader) == "" {
			treq.Header.Set(c.requestIDHeader, requestID)
		}
		log.Debug("fetch started", logger.Fields(logger.FieldURL, treq.URL))
	}

	var res *FetchResult
	if err == nil {
		res, err = c.race(ctx, &merged, treq, log)
	}

	c.finish(ctx, span, log, method, res, err, time.Since(start))
	return res, err
}

type raceResult struct {
	res *FetchResult
	err error
}

// race runs the pipeline in its own goroutine against the timeout.
// When the timer wins the pipeline keeps running and its result is dropped.
func (c *Client) race(ctx context.Context, cfg *RequestConfig, treq *TransportRequest, log *logger.Logger) (*FetchResult, error) {
	netCtx, cancel := context.WithCancelCause(ctx)
	cfg.Abort.arm(cancel, log)

	done := make(chan raceResult, 1)
	go func() {
		defer cancel(nil)
		res, err := c.pipeline(netCtx, cfg, treq)
		done <- raceResult{res: res, err: err}
	}()

	timeout := cfg.timeout()
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case out := <-done:
		return out.res, out.err
	case <-timer.C:
		return nil, NewTimeoutError(timeout)
	case <-ctx.Done():
		return nil, NewTransportError(context.Cause(ctx))
	}
}

// pipeline sends the request and turns the response into a result.
func (c *Client) pipeline(ctx context.Context, cfg *RequestConfig, treq *TransportRequest) (*FetchResult, error) {
	ctx = withPolicy(ctx, callPolicy{
		redirect: cfg.redirect(),
		cookies:  sendsCookies(cfg.credentials(), treq.URL, cfg.baseURL()),
	})
	if cfg.Abort != nil {
		ctx = httptrace.WithClientTrace(ctx, cfg.Abort.trace())
	}
	req, err := treq.httpRequest(ctx)
	if err != nil {
		return nil, NewTransportError(err)
	}
	observability.InjectHeaders(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.transport.Do(req)
	if err != nil {
		if errors.Is(context.Cause(ctx), ErrAborted) {
			return nil, NewTransportError(ErrAborted)
		}
		return nil, NewTransportError(err)
	}
	cfg.Abort.settle()
	defer func() {
		if resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	if hook := cfg.OnStatus[resp.StatusCode]; hook != nil {
		hook(cfg)
	}

	status := statusText(resp)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, NewHTTPStatusError(resp.StatusCode, status)
	}

	var progress func(received, total int64)
	if cfg.OnProgress != nil {
		progress = func(received, total int64) { cfg.OnProgress(received, total, resp) }
	}
	raw, err := assembleBody(resp.Body, resp.Header, progress)
	if err != nil {
		return nil, err
	}

	text, data, err := decodeBody(raw, negotiate(resp.Header, cfg.ResponseType, cfg.ResponseCharset))
	if err != nil {
		return nil, err
	}
	return &FetchResult{
		Data:     data,
		Response: resp,
		Message:  status,
		Code:     resp.StatusCode,
		text:     text,
	}, nil
}

// statusText returns the reason phrase of resp.
func statusText(resp *http.Response) string {
	if s := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)+" "); s != "" && s != resp.Status {
		return s
	}
	return http.StatusText(resp.StatusCode)
}
