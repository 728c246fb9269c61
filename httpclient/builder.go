package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// TransportRequest is the fully built request of a single call.
type TransportRequest struct {
	URL    string
	Method Method
	// Header is the finalized header set. For multipart bodies it carries
	// no Content-Type; ContentType holds the boundary-qualified value.
	Header http.Header
	Body   []byte
	// ContentType is set only for multipart bodies.
	ContentType string
}

// BuildRequest turns a URL, payload and fully merged configuration into a
// TransportRequest. It performs no network I/O.
func BuildRequest(rawURL string, cfg *RequestConfig, payload any) (*TransportRequest, error) {
	if cfg == nil {
		def := DefaultConfig()
		cfg = &def
	}
	method := cfg.method()
	headers := cfg.Headers.Clone()
	if headers == nil {
		headers = http.Header{}
	}

	var (
		body      []byte
		multipart string
	)
	if method == MethodGet {
		if q := encodeQuery(payload); q != "" {
			rawURL = appendQuery(rawURL, q)
		}
	} else {
		ct, _ := mediaType(headers.Get("Content-Type"))
		switch {
		case ct == ContentTypeMultipart:
			// A nil payload still yields an empty form.
			b, boundaryType, err := encodeMultipart(payload)
			if err != nil {
				return nil, NewEncodingError(err)
			}
			body, multipart = b, boundaryType
		case payload == nil:
		case ct == ContentTypeJSON:
			b, err := json.Marshal(payload)
			if err != nil {
				return nil, NewEncodingError(fmt.Errorf("encode json payload: %w", err))
			}
			body = b
		default:
			body = []byte(encodeQuery(payload))
		}
	}

	target := resolveURL(rawURL, cfg.baseURL())
	if err := checkMode(cfg.mode(), method, target, cfg.baseURL(), headers); err != nil {
		return nil, err
	}

	return &TransportRequest{
		URL:         target,
		Method:      method,
		Header:      finalizeHeaders(headers, cfg, multipart != ""),
		Body:        body,
		ContentType: multipart,
	}, nil
}

// finalizeHeaders is the single pure step that produces the outgoing header set.
func finalizeHeaders(in http.Header, cfg *RequestConfig, multipart bool) http.Header {
	h := in.Clone()
	if h == nil {
		h = http.Header{}
	}
	if multipart {
		h.Del("Content-Type")
	}

	switch cfg.cache() {
	case CacheNoStore:
		h.Set("Cache-Control", "no-store")
	case CacheNoCache, CacheReload:
		h.Set("Cache-Control", "no-cache")
		h.Set("Pragma", "no-cache")
	case CacheForceCache:
		h.Set("Cache-Control", "max-stale")
	case CacheOnlyIfCached:
		h.Set("Cache-Control", "only-if-cached")
	}

	if cfg.referrer() == ReferrerNoReferrer {
		h.Del("Referer")
	}
	return h
}

// resolveURL prefixes rawURL with baseURL unless it is already absolute.
func resolveURL(rawURL, baseURL string) string {
	if strings.HasPrefix(rawURL, "http://") || strings.HasPrefix(rawURL, "https://") {
		return rawURL
	}
	return baseURL + rawURL
}

func appendQuery(rawURL, query string) string {
	if strings.Contains(rawURL, "?") {
		return rawURL + "&" + query
	}
	return rawURL + "?" + query
}

var safelistedContentTypes = map[ContentType]bool{
	ContentTypeForm:      true,
	ContentTypeMultipart: true,
	ContentTypeText:      true,
}

func checkMode(mode CORSMode, method Method, target, baseURL string, headers http.Header) error {
	switch mode {
	case ModeSameOrigin:
		if baseURL != "" && !sameOrigin(target, baseURL) {
			return NewEncodingError(fmt.Errorf("%w: %s is not same-origin with %s", ErrModeViolation, target, baseURL))
		}
	case ModeNoCORS:
		switch method {
		case MethodGet, MethodHead, MethodPost:
		default:
			return NewEncodingError(fmt.Errorf("%w: method %s not allowed in no-cors mode", ErrModeViolation, method))
		}
		if v := headers.Get("Content-Type"); v != "" {
			if ct, _ := mediaType(v); !safelistedContentTypes[ct] {
				return NewEncodingError(fmt.Errorf("%w: content type %q not allowed in no-cors mode", ErrModeViolation, v))
			}
		}
	}
	return nil
}

func sameOrigin(a, b string) bool {
	ua, err := url.Parse(a)
	if err != nil {
		return false
	}
	ub, err := url.Parse(b)
	if err != nil {
		return false
	}
	return strings.EqualFold(ua.Scheme, ub.Scheme) && strings.EqualFold(ua.Host, ub.Host)
}

// httpRequest converts the built request into an *http.Request bound to ctx.
func (r *TransportRequest) httpRequest(ctx context.Context) (*http.Request, error) {
	var body *bytes.Reader
	if r.Body != nil {
		body = bytes.NewReader(r.Body)
	}

	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, string(r.Method), r.URL, body)
	} else {
		req, err = http.NewRequestWithContext(ctx, string(r.Method), r.URL, http.NoBody)
	}
	if err != nil {
		return nil, err
	}
	req.Header = r.Header.Clone()
	if r.ContentType != "" {
		req.Header.Set("Content-Type", r.ContentType)
	}
	return req, nil
}
