package httpclient

import (
	"encoding/base64"
)

// DefaultAPIKeyHeader is the header APIKeyAuth uses when none is given.
const DefaultAPIKeyHeader = "X-API-Key"

// BearerAuth returns a Before hook that sets "Authorization: Bearer <token>".
func BearerAuth(token string) BeforeHook {
	return setHeader("Authorization", "Bearer "+token)
}

// BasicAuth returns a Before hook that sets HTTP Basic credentials.
func BasicAuth(username, password string) BeforeHook {
	creds := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	return setHeader("Authorization", "Basic "+creds)
}

// APIKeyAuth returns a Before hook that sends key in header
// (DefaultAPIKeyHeader when header is empty).
func APIKeyAuth(key, header string) BeforeHook {
	if header == "" {
		header = DefaultAPIKeyHeader
	}
	return setHeader(header, key)
}

// TokenAuth returns a Before hook that reads a token from source on every
// call and sends it in the Authorization header, prefixed by scheme when
// scheme is non-empty. Nothing is set when source reports no token.
func TokenAuth(scheme string, source func() (string, bool)) BeforeHook {
	return func(cfg *RequestConfig) {
		token, ok := source()
		if !ok {
			return
		}
		if scheme != "" {
			token = scheme + " " + token
		}
		setHeader("Authorization", token)(cfg)
	}
}

// ChainBefore runs hooks in order. Nil hooks are skipped.
func ChainBefore(hooks ...BeforeHook) BeforeHook {
	return func(cfg *RequestConfig) {
		for _, h := range hooks {
			if h != nil {
				h(cfg)
			}
		}
	}
}

func setHeader(key, value string) BeforeHook {
	return func(cfg *RequestConfig) {
		if cfg.Headers == nil {
			cfg.Headers = make(map[string][]string)
		}
		cfg.Headers.Set(key, value)
	}
}
