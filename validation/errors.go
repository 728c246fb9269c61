package validation

import "strings"

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is returned by Validate and lists every failing field.
type Error struct {
	Fields []FieldError `json:"fields"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	messages := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		messages[i] = f.Field + ": " + f.Message
	}
	return "validation: " + strings.Join(messages, "; ")
}

// Has reports whether the named field failed validation.
func (e *Error) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}
