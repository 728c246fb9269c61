// Package httpclient is a descriptor-driven HTTP client.
//
// A ServiceDescriptor names an endpoint, its method and content type. A call
// merges configuration layers (built-in defaults, process-wide defaults set
// with Configure, the descriptor, then per-call overrides), builds the
// request, races it against a timeout, reads the body in chunks with
// optional progress reporting and decodes it by content type and charset.
//
// # Basic Usage
//
//	var login = httpclient.ServiceDescriptor{
//	    URL:         "/api/login",
//	    Method:      httpclient.MethodPost,
//	    ContentType: httpclient.ContentTypeJSON,
//	}
//
//	httpclient.Configure(httpclient.RequestConfig{
//	    BaseURL: httpclient.Ptr("https://api.example.com"),
//	    Timeout: httpclient.Ptr(10 * time.Second),
//	})
//
//	res, err := httpclient.Request(ctx, login, creds, nil)
//	if httpclient.IsHTTPStatus(err) {
//	    // res is nil; err carries the status code
//	}
//
// # Hooks
//
// RequestConfig.Before may rewrite the merged configuration of a call,
// OnStatus hooks run once when a matching status arrives and before the
// body is read, and OnProgress reports received bytes per chunk.
//
// # Cancellation
//
// An AbortHandle cancels a call until its response headers arrive. The
// timeout does not cancel the underlying request; a late response is
// discarded.
package httpclient
