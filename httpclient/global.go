package httpclient

import (
	"context"
	"sync"
)

var (
	defaultClient     *Client
	defaultClientOnce sync.Once
	defaultClientMu   sync.RWMutex
)

// Default returns the package-level client used by Configure, Send and Request.
func Default() *Client {
	defaultClientOnce.Do(func() {
		c, err := New()
		if err != nil {
			// NewTransport only fails on TLS settings, which are not set here.
			panic(err)
		}
		defaultClientMu.Lock()
		if defaultClient == nil {
			defaultClient = c
		}
		defaultClientMu.Unlock()
	})
	defaultClientMu.RLock()
	defer defaultClientMu.RUnlock()
	return defaultClient
}

// SetDefault replaces the package-level client.
func SetDefault(c *Client) {
	defaultClientOnce.Do(func() {})
	defaultClientMu.Lock()
	defaultClient = c
	defaultClientMu.Unlock()
}

// Configure merges defaults into the package-level client's defaults.
func Configure(defaults RequestConfig) {
	Default().Configure(defaults)
}

// Send calls rawURL with the package-level client.
func Send(ctx context.Context, rawURL string, payload any, cfg *RequestConfig) (*FetchResult, error) {
	return Default().Send(ctx, rawURL, payload, cfg)
}

// Request calls svc with the package-level client.
func Request(ctx context.Context, svc ServiceDescriptor, payload any, cfg *RequestConfig) (*FetchResult, error) {
	return Default().Request(ctx, svc, payload, cfg)
}
