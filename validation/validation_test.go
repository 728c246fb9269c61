package validation

import (
	"errors"
	"strings"
	"testing"
)

type endpointDef struct {
	URL         string `json:"url" validate:"required,endpoint"`
	Method      string `json:"method" validate:"required,oneof=GET POST PUT DELETE"`
	ContentType string `validate:"omitempty,oneof=application/json text/plain"`
}

func TestValidate_Valid(t *testing.T) {
	cases := []endpointDef{
		{URL: "/api/login", Method: "POST"},
		{URL: "https://api.example.com/users", Method: "GET", ContentType: "application/json"},
		{URL: "users", Method: "DELETE"},
	}
	for _, c := range cases {
		if err := Validate(c); err != nil {
			t.Errorf("Validate(%+v) unexpected error: %v", c, err)
		}
	}
}

func TestValidate_FieldErrors(t *testing.T) {
	err := Validate(endpointDef{URL: "ftp://files.example.com", Method: "PATCH", ContentType: "image/png"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	for _, field := range []string{"url", "method", "content_type"} {
		if !verr.Has(field) {
			t.Errorf("expected error for field %q, got %v", field, verr.Fields)
		}
	}
	if !strings.Contains(err.Error(), "method: must be one of: GET POST PUT DELETE") {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestValidate_Required(t *testing.T) {
	err := Validate(endpointDef{})
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if !verr.Has("url") || !verr.Has("method") {
		t.Errorf("expected url and method to be required, got %v", verr.Fields)
	}
}

func TestEndpointRejectsWhitespace(t *testing.T) {
	if err := Validate(endpointDef{URL: "/api/ login", Method: "GET"}); err == nil {
		t.Error("expected whitespace in url to fail")
	}
}

type transportDef struct {
	Charset string            `json:"charset" validate:"omitempty,charset"`
	Headers map[string]string `json:"headers" validate:"dive,keys,header_name,endkeys"`
	TLS     *tlsDef           `json:"tls"`
}

type tlsDef struct {
	CertFile string `json:"cert_file" validate:"required_with=KeyFile"`
	KeyFile  string `json:"key_file"`
}

func TestValidate_CustomTags(t *testing.T) {
	tests := []struct {
		name  string
		in    transportDef
		field string
	}{
		{"valid", transportDef{Charset: "gb2312", Headers: map[string]string{"X-Trace": "1"}}, ""},
		{"unknown charset", transportDef{Charset: "klingon"}, "charset"},
		{"space in header", transportDef{Headers: map[string]string{"X Trace": "1"}}, "headers[X Trace]"},
		{"colon in header", transportDef{Headers: map[string]string{"X-Trace:": "1"}}, "headers[X-Trace:]"},
		{"nested path", transportDef{TLS: &tlsDef{KeyFile: "key.pem"}}, "tls.cert_file"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.in)
			if tc.field == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var verr *Error
			if !errors.As(err, &verr) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if !verr.Has(tc.field) {
				t.Errorf("expected error for %q, got %v", tc.field, verr.Fields)
			}
		})
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"ContentType": "content_type",
		"URL":         "u_r_l",
		"name":        "name",
	}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
