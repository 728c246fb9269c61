package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/encoding/htmlindex"
)

// customTags are the fetchkit-specific tags registered on the validator,
// with the message reported when they fail.
var customTags = map[string]struct {
	fn  validator.Func
	msg string
}{
	"endpoint":    {isEndpoint, "must be a relative path or an http(s) URL"},
	"header_name": {isHeaderName, "must be a valid HTTP header name"},
	"charset":     {isCharset, "must be a known charset label"},
}

var (
	validate *validator.Validate
	once     sync.Once
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(fieldName)
		for tag, v := range customTags {
			if err := validate.RegisterValidation(tag, v.fn); err != nil {
				panic(fmt.Sprintf("validation: register %s: %v", tag, err))
			}
		}
	})
	return validate
}

// Validate checks s against its `validate` struct tags and returns an
// *Error listing each failing field by its json path (for example
// "tls.cert_file").
func Validate(s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validation: %w", err)
	}
	out := &Error{Fields: make([]FieldError, 0, len(verrs))}
	for _, e := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: path(e.Namespace()), Message: message(e)})
	}
	return out
}

// path drops the root struct name from a validator namespace.
func path(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func fieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" || name == "" {
		return toSnakeCase(fld.Name)
	}
	return name
}

func message(e validator.FieldError) string {
	if t, ok := customTags[e.Tag()]; ok {
		return t.msg
	}
	switch e.Tag() {
	case "required":
		return "is required"
	case "required_with":
		return "is required together with " + toSnakeCase(e.Param())
	case "oneof":
		return "must be one of: " + e.Param()
	case "gte":
		return "must be at least " + e.Param()
	case "url":
		return "must be a valid URL"
	case "file":
		return "must be an existing file"
	default:
		return "failed " + e.Tag()
	}
}

// isEndpoint accepts absolute http(s) URLs and scheme-less relative paths.
func isEndpoint(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if strings.IndexFunc(s, func(r rune) bool { return unicode.IsSpace(r) || unicode.IsControl(r) }) >= 0 {
		return false
	}
	if scheme, _, ok := strings.Cut(s, "://"); ok {
		scheme = strings.ToLower(scheme)
		return scheme == "http" || scheme == "https"
	}
	return true
}

// isHeaderName reports whether the value is an RFC 9110 token.
func isHeaderName(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x7f || c <= ' ' || strings.IndexByte(`"(),/:;<=>?@[\]{}`, c) >= 0 {
			return false
		}
	}
	return true
}

func isCharset(fl validator.FieldLevel) bool {
	_, err := htmlindex.Get(fl.Field().String())
	return err == nil
}

func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
