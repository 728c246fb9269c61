package main

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kbukum/fetchkit/bootstrap"
	"github.com/kbukum/fetchkit/config"
	"github.com/kbukum/fetchkit/httpclient"
	"github.com/kbukum/fetchkit/observability"
	"github.com/kbukum/fetchkit/version"
)

const serviceName = "fetch"

// globalOptions are shared by every subcommand.
type globalOptions struct {
	configFile   string
	envFile      string
	baseURL      string
	timeout      time.Duration
	credentials  string
	verbose      bool
	otlpEndpoint string
	otlpInsecure bool
}

type requestOptions struct {
	method    string
	data      []string
	headers   []string
	json      bool
	form      bool
	multipart bool
	redirect  string
	charset   string
	include   bool
}

func newRootCmd() *cobra.Command {
	g := &globalOptions{}
	o := &requestOptions{}

	root := &cobra.Command{
		Use:   "fetch [flags] <url>",
		Short: "Send one HTTP request and print the decoded body",
		Long: `fetch sends a request with the fetchkit client. Relative URLs are
resolved against --base-url or fetch.base_url from config.yml.

Examples:
  fetch --base-url https://api.example.com /api/users -d page=2
  fetch -X POST --json -d username=a -d password=b /api/login
  fetch -X POST --multipart -d title=report -d file=@report.pdf /upload`,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequest(cmd, g, o, args[0])
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.configFile, "config", "", "Path to config file")
	pf.StringVar(&g.envFile, "env-file", "", "Path to .env file")
	pf.StringVar(&g.baseURL, "base-url", "", "Base URL for relative request URLs")
	pf.DurationVar(&g.timeout, "timeout", 0, "Request timeout (default from config, 30s)")
	pf.StringVar(&g.credentials, "credentials", "", "Cookie policy: omit, same-origin or include")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "Log request diagnostics to stderr")
	pf.StringVar(&g.otlpEndpoint, "otlp-endpoint", "", "Export traces and metrics to this OTLP/HTTP host:port")
	pf.BoolVar(&g.otlpInsecure, "otlp-insecure", false, "Export telemetry over plain HTTP")

	f := root.Flags()
	f.StringVarP(&o.method, "method", "X", "", "HTTP method (default GET)")
	f.StringArrayVarP(&o.data, "data", "d", nil, "Payload field key=value (repeatable)")
	f.StringArrayVarP(&o.headers, "header", "H", nil, "Request header 'Name: value' (repeatable)")
	f.BoolVar(&o.json, "json", false, "Send the payload as JSON")
	f.BoolVar(&o.form, "form", false, "Send the payload URL-encoded")
	f.BoolVar(&o.multipart, "multipart", false, "Send the payload as multipart/form-data; key=@path attaches a file")
	f.StringVar(&o.redirect, "redirect", "", "Redirect policy: follow, manual or error")
	f.StringVar(&o.charset, "charset", "", "Decode the response with this charset")
	f.BoolVarP(&o.include, "include", "i", false, "Print the status line and response headers")
	root.MarkFlagsMutuallyExclusive("json", "form", "multipart")

	root.AddCommand(newLoginCmd(g), newCheckCmd(g), newVersionCmd())
	return root
}

// contentType returns the Content-Type selected by the body flags.
func (o *requestOptions) contentType() httpclient.ContentType {
	switch {
	case o.json:
		return httpclient.ContentTypeJSON
	case o.form:
		return httpclient.ContentTypeForm
	case o.multipart:
		return httpclient.ContentTypeMultipart
	}
	return ""
}

// callConfig builds the per-call configuration and payload.
func (o *requestOptions) callConfig() (*httpclient.RequestConfig, any, error) {
	headers, err := parseHeaders(o.headers)
	if err != nil {
		return nil, nil, err
	}
	if ct := o.contentType(); ct != "" {
		headers.Set("Content-Type", string(ct))
	}
	cfg := &httpclient.RequestConfig{Headers: headers}
	if o.method != "" {
		cfg.Method = httpclient.Ptr(httpclient.Method(o.method))
	}
	if o.redirect != "" {
		cfg.Redirect = httpclient.Ptr(httpclient.RedirectPolicy(o.redirect))
	}
	if o.charset != "" {
		cfg.ResponseCharset = httpclient.Ptr(o.charset)
	}

	var payload any
	if len(o.data) > 0 {
		params, err := parseData(o.data, o.multipart)
		if err != nil {
			return nil, nil, err
		}
		payload = params
	}
	return cfg, payload, nil
}

func runRequest(cmd *cobra.Command, g *globalOptions, o *requestOptions, target string) error {
	cfg, payload, err := o.callConfig()
	if err != nil {
		return err
	}
	return g.run(cmd, func(ctx context.Context, c *httpclient.Client) error {
		res, err := c.Send(ctx, target, payload, cfg)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if o.include {
			printHead(out, res)
		}
		_, err = fmt.Fprintln(out, res.Text())
		return err
	})
}

func printHead(w io.Writer, res *httpclient.FetchResult) {
	fmt.Fprintf(w, "HTTP %d %s\n", res.Code, res.Message)
	if res.Response == nil {
		return
	}
	names := make([]string, 0, len(res.Response.Header))
	for name := range res.Response.Header {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		for _, v := range res.Response.Header[name] {
			fmt.Fprintf(w, "%s: %s\n", name, v)
		}
	}
	fmt.Fprintln(w)
}

// run loads the settings, starts the client component and runs task.
func (g *globalOptions) run(cmd *cobra.Command, task func(ctx context.Context, c *httpclient.Client) error) error {
	fc, err := g.load()
	if err != nil {
		return err
	}
	info := version.Get()

	app, err := bootstrap.NewApp(fc, bootstrap.WithVersion(info.Short()))
	if err != nil {
		return fmt.Errorf("%w: %w", errConfig, err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	opts, err := g.telemetry(ctx, app, fc)
	if err != nil {
		return err
	}
	comp := httpclient.NewComponent(serviceName, fc.Fetch, opts...)
	if err := app.RegisterComponent(comp); err != nil {
		return err
	}
	return app.RunTask(ctx, func(ctx context.Context) error {
		return task(ctx, comp.Client())
	})
}

// load reads config.yml and .env and applies the command line overrides.
func (g *globalOptions) load() (*httpclient.FileConfig, error) {
	var loaderOpts []config.LoaderOption
	if g.configFile != "" {
		loaderOpts = append(loaderOpts, config.WithConfigFile(g.configFile))
	}
	if g.envFile != "" {
		loaderOpts = append(loaderOpts, config.WithEnvFile(g.envFile))
	}
	fc, err := httpclient.LoadSettings(serviceName, loaderOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errConfig, err)
	}

	if g.baseURL != "" {
		fc.Fetch.BaseURL = g.baseURL
	}
	if g.timeout > 0 {
		fc.Fetch.Timeout = g.timeout
	}
	if g.credentials != "" {
		fc.Fetch.Credentials = g.credentials
	}
	if g.otlpEndpoint != "" {
		fc.Telemetry.Endpoint = g.otlpEndpoint
	}
	if g.otlpInsecure {
		fc.Telemetry.Insecure = true
	}
	if !hasHeader(fc.Fetch.Headers, "User-Agent") {
		if fc.Fetch.Headers == nil {
			fc.Fetch.Headers = map[string]string{}
		}
		fc.Fetch.Headers["User-Agent"] = version.Get().UserAgent("fetchkit")
	}

	fc.Logging.Level = "warn"
	if g.verbose {
		fc.Logging.Level = "debug"
	}
	if fc.Logging.Output == "" || fc.Logging.Output == "stdout" {
		fc.Logging.Output = "stderr"
	}

	if err := fc.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errConfig, err)
	}
	return fc, nil
}

func hasHeader(headers map[string]string, name string) bool {
	for k := range headers {
		if strings.EqualFold(k, name) {
			return true
		}
	}
	return false
}

// telemetry installs OTLP exporters when an endpoint is configured and
// returns the client options wiring them in.
func (g *globalOptions) telemetry(ctx context.Context, app *bootstrap.App[*httpclient.FileConfig], fc *httpclient.FileConfig) ([]httpclient.Option, error) {
	opts := []httpclient.Option{httpclient.WithRequestID("")}
	tc := fc.TelemetryConfig(app.Version)
	if !tc.Enabled() {
		return opts, nil
	}

	p, err := observability.Setup(ctx, tc)
	if err != nil {
		return nil, err
	}
	app.OnStop(p.Shutdown)

	metrics, err := observability.NewClientMetrics(observability.Meter(p.Meter))
	if err != nil {
		return nil, err
	}
	return append(opts, httpclient.WithTracerProvider(p.Tracer), httpclient.WithMetrics(metrics)), nil
}
