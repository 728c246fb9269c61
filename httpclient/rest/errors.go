package rest

import (
	"net/http"

	"github.com/kbukum/fetchkit/httpclient"
)

// Status helpers classify httpclient errors so callers of this package
// don't need to import httpclient for error checking.

// IsNotFound checks if the error is a 404 Not Found.
func IsNotFound(err error) bool { return httpclient.StatusCode(err) == http.StatusNotFound }

// IsAuth checks if the error is a 401 or 403 response.
func IsAuth(err error) bool {
	code := httpclient.StatusCode(err)
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}

// IsServerError checks if the error is a 5xx response.
func IsServerError(err error) bool {
	code := httpclient.StatusCode(err)
	return code >= 500 && code <= 599
}

// IsTimeout checks if the call timed out.
func IsTimeout(err error) bool { return httpclient.IsTimeout(err) }

// IsDecode checks if the response body could not be decoded.
func IsDecode(err error) bool { return httpclient.IsParse(err) }
