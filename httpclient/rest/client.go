package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/kbukum/fetchkit/httpclient"
)

// NoPayload is the request type of services that send no payload.
type NoPayload struct{}

// Service is a ServiceDescriptor bound to its request and response types.
type Service[Req, Resp any] struct {
	httpclient.ServiceDescriptor
}

// NewService creates a validated Service.
func NewService[Req, Resp any](url string, method httpclient.Method, contentType httpclient.ContentType) (Service[Req, Resp], error) {
	svc := Service[Req, Resp]{httpclient.ServiceDescriptor{URL: url, Method: method, ContentType: contentType}}
	if err := svc.Validate(); err != nil {
		return Service[Req, Resp]{}, fmt.Errorf("rest: service %s %s: %w", method, url, err)
	}
	return svc, nil
}

// MustService is like NewService but panics on an invalid descriptor.
// It is meant for package-level service declarations.
func MustService[Req, Resp any](url string, method httpclient.Method, contentType httpclient.ContentType) Service[Req, Resp] {
	svc, err := NewService[Req, Resp](url, method, contentType)
	if err != nil {
		panic(err)
	}
	return svc
}

// Envelope is the common {success, message, code, data} response body.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    int    `json:"code"`
	Data    T      `json:"data"`
}

// Result wraps a typed response.
type Result[T any] struct {
	// Data is the decoded response body.
	Data T
	// Code and Message are the HTTP status code and text.
	Code    int
	Message string
	// Response is the underlying response with its body consumed.
	Response *http.Response
}

// Call invokes svc with payload and decodes the JSON response into Resp.
// A nil client uses httpclient.Default(). An empty body decodes to the zero
// value of Resp.
func Call[Req, Resp any](ctx context.Context, c *httpclient.Client, svc Service[Req, Resp], payload Req, cfg *httpclient.RequestConfig) (*Result[Resp], error) {
	if c == nil {
		c = httpclient.Default()
	}

	var body any = payload
	if _, ok := body.(NoPayload); ok {
		body = nil
	}

	res, err := c.Request(ctx, svc.ServiceDescriptor, body, cfg)
	if err != nil {
		return nil, err
	}

	var data Resp
	if text := res.Text(); strings.TrimSpace(text) != "" {
		if err := json.Unmarshal([]byte(text), &data); err != nil {
			return nil, httpclient.NewParseError(fmt.Errorf("decode %s response: %w", svc.URL, err))
		}
	}
	return &Result[Resp]{
		Data:     data,
		Code:     res.Code,
		Message:  res.Message,
		Response: res.Response,
	}, nil
}
