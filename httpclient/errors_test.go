package httpclient

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestError_Format(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"status", NewHTTPStatusError(404, "Not Found"), "httpclient: http_status (HTTP 404): Not Found"},
		{"timeout", NewTimeoutError(2 * time.Second), "httpclient: timeout: request did not complete within 2s"},
		{"empty body", NewEmptyBodyError(), "httpclient: empty_body: response has no body"},
		{"parse", NewParseError(errors.New("bad json")), "httpclient: parse: bad json"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.err.Error(); got != tc.want {
				t.Errorf("Error() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestError_Predicates(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	wrapped := fmt.Errorf("login: %w", NewTransportError(cause))

	if !IsTransport(wrapped) || IsTimeout(wrapped) {
		t.Error("predicates must see through wrapping")
	}
	if !errors.Is(wrapped, cause) {
		t.Error("transport error must unwrap to its cause")
	}
	if IsAborted(wrapped) {
		t.Error("plain transport error is not an abort")
	}
	if !IsAborted(NewTransportError(ErrAborted)) {
		t.Error("expected abort to be detected")
	}
	if !IsEncoding(NewEncodingError(ErrModeViolation)) {
		t.Error("expected encoding kind")
	}
}

func TestStatusCode(t *testing.T) {
	if got := StatusCode(fmt.Errorf("x: %w", NewHTTPStatusError(503, "Service Unavailable"))); got != 503 {
		t.Errorf("StatusCode = %d, want 503", got)
	}
	if got := StatusCode(errors.New("other")); got != 0 {
		t.Errorf("StatusCode = %d, want 0", got)
	}
	if got := StatusCode(nil); got != 0 {
		t.Errorf("StatusCode(nil) = %d, want 0", got)
	}
}

func TestErrorKind_String(t *testing.T) {
	if KindHTTPStatus.String() != "http_status" || ErrorKind(99).String() != "unknown" {
		t.Error("unexpected kind names")
	}
}
