package httpclient

import (
	"net/http"

	"github.com/kbukum/fetchkit/validation"
)

// ServiceDescriptor is an immutable description of one remote endpoint.
// Descriptors are usually declared once at package level.
type ServiceDescriptor struct {
	// URL is absolute (http:// or https://) or relative to the configured BaseURL.
	URL string `json:"url" validate:"required,endpoint"`
	// Method is the verb used unless a call overrides it.
	Method Method `json:"method" validate:"required,oneof=GET POST PUT DELETE HEAD PATCH"`
	// ContentType selects payload encoding and is sent as the Content-Type header.
	ContentType ContentType `json:"content_type" validate:"omitempty,oneof=application/json application/x-www-form-urlencoded multipart/form-data text/plain"`
}

// Validate checks the descriptor fields.
func (s ServiceDescriptor) Validate() error {
	return validation.Validate(s)
}

// layer returns the configuration contributed by the descriptor.
func (s ServiceDescriptor) layer() RequestConfig {
	cfg := RequestConfig{}
	if s.Method != "" {
		cfg.Method = Ptr(s.Method)
	}
	if s.ContentType != "" {
		cfg.Headers = http.Header{"Content-Type": {string(s.ContentType)}}
	}
	return cfg
}
