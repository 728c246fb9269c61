package main

import (
	"errors"

	"github.com/kbukum/fetchkit/httpclient"
)

// Exit codes of the fetch command.
const (
	ExitSuccess      = 0
	ExitHTTPStatus   = 1
	ExitParseError   = 2
	ExitConfigError  = 3
	ExitNetworkError = 4
	ExitTimeout      = 5
	ExitUsageError   = 64
)

var (
	errConfig = errors.New("configuration")
	errUsage  = errors.New("usage")
)

func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, errUsage), httpclient.IsEncoding(err):
		return ExitUsageError
	case errors.Is(err, errConfig):
		return ExitConfigError
	case httpclient.IsHTTPStatus(err):
		return ExitHTTPStatus
	case httpclient.IsParse(err), httpclient.IsEmptyBody(err):
		return ExitParseError
	case httpclient.IsTimeout(err):
		return ExitTimeout
	case httpclient.IsTransport(err):
		return ExitNetworkError
	default:
		return ExitHTTPStatus
	}
}
