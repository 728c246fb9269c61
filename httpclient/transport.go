package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"

	"golang.org/x/net/publicsuffix"
)

// DefaultMaxRedirects bounds redirect chains under RedirectFollow.
const DefaultMaxRedirects = 20

// Transport sends a prepared request. *http.Client satisfies it.
type Transport interface {
	Do(req *http.Request) (*http.Response, error)
}

// TransportConfig configures the transport built by NewTransport.
type TransportConfig struct {
	// TLS configures client TLS. Nil uses system defaults.
	TLS *TLSConfig
	// MaxRedirects bounds followed redirects. Zero means DefaultMaxRedirects.
	MaxRedirects int
	// Jar stores cookies for calls whose credentials mode allows them.
	// Nil creates an in-memory jar using the public suffix list.
	Jar http.CookieJar
}

// HTTPTransport is the default Transport. It honors the per-call redirect
// policy and credentials mode carried on the request context.
type HTTPTransport struct {
	withCookies    *http.Client
	withoutCookies *http.Client
	base           *http.Transport
}

var _ Transport = (*HTTPTransport)(nil)

// NewTransport builds an HTTPTransport.
func NewTransport(cfg TransportConfig) (*HTTPTransport, error) {
	base := http.DefaultTransport.(*http.Transport).Clone()
	tlsCfg, err := cfg.TLS.Build()
	if err != nil {
		return nil, err
	}
	if tlsCfg != nil {
		base.TLSClientConfig = tlsCfg
	}

	jar := cfg.Jar
	if jar == nil {
		jar, err = cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("httpclient: create cookie jar: %w", err)
		}
	}

	maxRedirects := cfg.MaxRedirects
	if maxRedirects <= 0 {
		maxRedirects = DefaultMaxRedirects
	}
	checkRedirect := func(req *http.Request, via []*http.Request) error {
		switch policyFrom(req.Context()).redirect {
		case RedirectManual:
			return http.ErrUseLastResponse
		case RedirectError:
			return ErrRedirectBlocked
		}
		if len(via) >= maxRedirects {
			return fmt.Errorf("stopped after %d redirects", maxRedirects)
		}
		return nil
	}

	return &HTTPTransport{
		withCookies:    &http.Client{Transport: base, Jar: jar, CheckRedirect: checkRedirect},
		withoutCookies: &http.Client{Transport: base, CheckRedirect: checkRedirect},
		base:           base,
	}, nil
}

// Do sends req, attaching cookies only when the call's credentials mode allows it.
func (t *HTTPTransport) Do(req *http.Request) (*http.Response, error) {
	if policyFrom(req.Context()).cookies {
		return t.withCookies.Do(req)
	}
	return t.withoutCookies.Do(req)
}

// CloseIdleConnections closes idle keep-alive connections.
func (t *HTTPTransport) CloseIdleConnections() {
	t.base.CloseIdleConnections()
}

// callPolicy carries per-call transport options through the request context.
type callPolicy struct {
	redirect RedirectPolicy
	cookies  bool
}

type policyKey struct{}

func withPolicy(ctx context.Context, p callPolicy) context.Context {
	return context.WithValue(ctx, policyKey{}, p)
}

func policyFrom(ctx context.Context) callPolicy {
	if p, ok := ctx.Value(policyKey{}).(callPolicy); ok {
		return p
	}
	return callPolicy{redirect: RedirectFollow}
}

// sendsCookies resolves the credentials mode for one target URL.
func sendsCookies(mode CredentialsMode, target, baseURL string) bool {
	switch mode {
	case CredentialsInclude:
		return true
	case CredentialsSameOrigin:
		return baseURL == "" || sameOrigin(target, baseURL)
	}
	return false
}
