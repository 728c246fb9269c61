package httpclient

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind classifies fetch failures.
type ErrorKind int

const (
	// KindEncoding indicates the payload could not be encoded for the request.
	KindEncoding ErrorKind = iota
	// KindEmptyBody indicates a successful response carried no body stream.
	KindEmptyBody
	// KindParse indicates the response body could not be decoded.
	KindParse
	// KindHTTPStatus indicates a response status outside 200-299.
	KindHTTPStatus
	// KindTimeout indicates the configured timeout elapsed first.
	KindTimeout
	// KindTransport indicates a network, redirect or cancellation failure.
	KindTransport
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindEncoding:
		return "encoding"
	case KindEmptyBody:
		return "empty_body"
	case KindParse:
		return "parse"
	case KindHTTPStatus:
		return "http_status"
	case KindTimeout:
		return "timeout"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// ErrAborted is wrapped by the transport error raised when an AbortHandle
// cancels a request before its headers arrive.
var ErrAborted = errors.New("request aborted")

// ErrModeViolation is wrapped by the encoding error raised when a request
// breaks the configured CORS mode.
var ErrModeViolation = errors.New("request violates cors mode")

// ErrRedirectBlocked is returned by the transport when the redirect policy
// is RedirectError and the server answers with a redirect.
var ErrRedirectBlocked = errors.New("redirect blocked by policy")

// Error is the single error type returned by Client operations.
type Error struct {
	// Kind classifies the failure.
	Kind ErrorKind
	// StatusCode is the HTTP status (only for KindHTTPStatus).
	StatusCode int
	// Status is the status text (only for KindHTTPStatus).
	Status string
	// Message describes the failure.
	Message string
	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("httpclient: %s (HTTP %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("httpclient: %s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewEncodingError wraps a payload encoding failure.
func NewEncodingError(err error) *Error {
	return &Error{Kind: KindEncoding, Message: err.Error(), Err: err}
}

// NewEmptyBodyError reports a response without a readable body.
func NewEmptyBodyError() *Error {
	return &Error{Kind: KindEmptyBody, Message: "response has no body"}
}

// NewParseError wraps a body decoding failure.
func NewParseError(err error) *Error {
	return &Error{Kind: KindParse, Message: err.Error(), Err: err}
}

// NewHTTPStatusError reports a non-2xx response.
func NewHTTPStatusError(code int, status string) *Error {
	return &Error{Kind: KindHTTPStatus, StatusCode: code, Status: status, Message: status}
}

// NewTimeoutError reports that the timeout elapsed before the pipeline finished.
func NewTimeoutError(d time.Duration) *Error {
	return &Error{Kind: KindTimeout, Message: fmt.Sprintf("request did not complete within %s", d)}
}

// NewTransportError wraps a network level failure.
func NewTransportError(err error) *Error {
	return &Error{Kind: KindTransport, Message: err.Error(), Err: err}
}

func isKind(err error, k ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

// IsEncoding reports whether err is an encoding error.
func IsEncoding(err error) bool { return isKind(err, KindEncoding) }

// IsEmptyBody reports whether err is an empty body error.
func IsEmptyBody(err error) bool { return isKind(err, KindEmptyBody) }

// IsParse reports whether err is a parse error.
func IsParse(err error) bool { return isKind(err, KindParse) }

// IsHTTPStatus reports whether err is a non-2xx status error.
func IsHTTPStatus(err error) bool { return isKind(err, KindHTTPStatus) }

// IsTimeout reports whether err is a timeout error.
func IsTimeout(err error) bool { return isKind(err, KindTimeout) }

// IsTransport reports whether err is a transport error.
func IsTransport(err error) bool { return isKind(err, KindTransport) }

// IsAborted reports whether err was caused by an AbortHandle.
func IsAborted(err error) bool { return errors.Is(err, ErrAborted) }

// StatusCode extracts the HTTP status from an HTTP status error, or 0.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}
