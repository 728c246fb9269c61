// Package validation validates configuration and descriptor structs using
// struct tags and the go-playground validator.
//
//	type ServiceDescriptor struct {
//	    URL    string `json:"url" validate:"required,endpoint"`
//	    Method string `json:"method" validate:"oneof=GET POST PUT DELETE"`
//	}
//	err := validation.Validate(desc)
//
// Besides the built-in tags, the "endpoint" tag accepts absolute http(s)
// URLs and relative paths without whitespace.
package validation
