package httpclient

import (
	"maps"
	"net/http"
	"time"
)

// DefaultTimeout is the built-in request timeout.
const DefaultTimeout = 30 * time.Second

// BeforeHook may rewrite the fully merged configuration of a single call
// right before the transport request is built.
type BeforeHook func(cfg *RequestConfig)

// StatusHook runs once when a response with a matching status arrives,
// before the body is read.
type StatusHook func(cfg *RequestConfig)

// ProgressFunc is invoked after every body chunk. total is the advertised
// Content-Length or 0 when unknown.
type ProgressFunc func(received, total int64, resp *http.Response)

// RequestConfig describes how a call is made. Every field is optional:
// a nil field inherits the value from the layer below it
// (built-in defaults, then Configure, then the service, then the caller).
type RequestConfig struct {
	BaseURL     *string
	Method      *Method
	Cache       *CacheMode
	Credentials *CredentialsMode
	Mode        *CORSMode
	Redirect    *RedirectPolicy
	Referrer    *ReferrerPolicy
	// Headers are merged key by key; a key set by a higher layer replaces
	// all values of that key from lower layers.
	Headers http.Header
	Timeout *time.Duration
	// ResponseCharset overrides the charset announced by the response.
	ResponseCharset *string
	// ResponseType overrides the content type announced by the response.
	ResponseType *ContentType

	Before     BeforeHook
	OnStatus   map[int]StatusHook
	OnProgress ProgressFunc
	Abort      *AbortHandle
}

// DefaultConfig returns the built-in configuration layer.
func DefaultConfig() RequestConfig {
	return RequestConfig{
		BaseURL:     Ptr(""),
		Method:      Ptr(MethodGet),
		Cache:       Ptr(CacheDefault),
		Credentials: Ptr(CredentialsOmit),
		Mode:        Ptr(ModeSameOrigin),
		Redirect:    Ptr(RedirectFollow),
		Referrer:    Ptr(ReferrerClient),
		Headers:     http.Header{},
		Timeout:     Ptr(DefaultTimeout),
	}
}

// Merge returns a new configuration where every non-nil field of over
// replaces the receiver's. Neither input is modified.
func (c RequestConfig) Merge(over *RequestConfig) RequestConfig {
	out := c.Clone()
	if over == nil {
		return out
	}
	out.BaseURL = pick(out.BaseURL, over.BaseURL)
	out.Method = pick(out.Method, over.Method)
	out.Cache = pick(out.Cache, over.Cache)
	out.Credentials = pick(out.Credentials, over.Credentials)
	out.Mode = pick(out.Mode, over.Mode)
	out.Redirect = pick(out.Redirect, over.Redirect)
	out.Referrer = pick(out.Referrer, over.Referrer)
	out.Timeout = pick(out.Timeout, over.Timeout)
	out.ResponseCharset = pick(out.ResponseCharset, over.ResponseCharset)
	out.ResponseType = pick(out.ResponseType, over.ResponseType)

	for k, vs := range over.Headers {
		if out.Headers == nil {
			out.Headers = http.Header{}
		}
		out.Headers[http.CanonicalHeaderKey(k)] = append([]string(nil), vs...)
	}
	for code, hook := range over.OnStatus {
		if hook == nil {
			continue
		}
		if out.OnStatus == nil {
			out.OnStatus = map[int]StatusHook{}
		}
		out.OnStatus[code] = hook
	}
	if over.Before != nil {
		out.Before = over.Before
	}
	if over.OnProgress != nil {
		out.OnProgress = over.OnProgress
	}
	if over.Abort != nil {
		out.Abort = over.Abort
	}
	return out
}

// Clone returns a deep copy. Hooks and the abort handle are shared.
func (c RequestConfig) Clone() RequestConfig {
	out := c
	out.BaseURL = clonePtr(c.BaseURL)
	out.Method = clonePtr(c.Method)
	out.Cache = clonePtr(c.Cache)
	out.Credentials = clonePtr(c.Credentials)
	out.Mode = clonePtr(c.Mode)
	out.Redirect = clonePtr(c.Redirect)
	out.Referrer = clonePtr(c.Referrer)
	out.Timeout = clonePtr(c.Timeout)
	out.ResponseCharset = clonePtr(c.ResponseCharset)
	out.ResponseType = clonePtr(c.ResponseType)
	out.Headers = c.Headers.Clone()
	if out.Headers == nil {
		out.Headers = http.Header{}
	}
	if c.OnStatus != nil {
		out.OnStatus = maps.Clone(c.OnStatus)
	}
	return out
}

func (c *RequestConfig) baseURL() string {
	return deref(c.BaseURL, "")
}

func (c *RequestConfig) method() Method {
	m := deref(c.Method, MethodGet)
	if m == "" {
		return MethodGet
	}
	return m
}

func (c *RequestConfig) timeout() time.Duration {
	d := deref(c.Timeout, DefaultTimeout)
	if d <= 0 {
		return DefaultTimeout
	}
	return d
}

func (c *RequestConfig) cache() CacheMode             { return deref(c.Cache, CacheDefault) }
func (c *RequestConfig) credentials() CredentialsMode { return deref(c.Credentials, CredentialsOmit) }
func (c *RequestConfig) mode() CORSMode               { return deref(c.Mode, ModeSameOrigin) }
func (c *RequestConfig) redirect() RedirectPolicy     { return deref(c.Redirect, RedirectFollow) }
func (c *RequestConfig) referrer() ReferrerPolicy     { return deref(c.Referrer, ReferrerClient) }

func pick[T any](base, over *T) *T {
	if over != nil {
		return clonePtr(over)
	}
	return base
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
