package logger

import "time"

// Field keys used across fetchkit log lines.
const (
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldURL       = "url"
	FieldStatus    = "status"
	FieldBytes     = "bytes"
	FieldError     = "error"
	FieldKind      = "kind"
	FieldDuration  = "duration_ms"
)

// Fields pairs up alternating keys and values. Non-string keys and a
// trailing key without a value are skipped.
//
//	log.Debug("fetch completed", logger.Fields(logger.FieldStatus, 200))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// MergeWithDuration sets FieldDuration in milliseconds.
func MergeWithDuration(fields map[string]interface{}, d time.Duration) map[string]interface{} {
	if fields == nil {
		fields = map[string]interface{}{}
	}
	fields[FieldDuration] = d.Milliseconds()
	return fields
}
