package httpclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"slices"
	"strings"
)

// Param is a single key/value pair of an ordered payload.
type Param struct {
	Key   string
	Value any
}

// Params is an ordered payload. Unlike a map it keeps insertion order
// in query strings, form bodies, multipart forms and JSON objects.
type Params []Param

// NewParams builds Params from alternating keys and values.
// A trailing key without a value gets a nil value.
func NewParams(kv ...any) Params {
	p := make(Params, 0, (len(kv)+1)/2)
	for i := 0; i < len(kv); i += 2 {
		var v any
		if i+1 < len(kv) {
			v = kv[i+1]
		}
		p = append(p, Param{Key: fmt.Sprint(kv[i]), Value: v})
	}
	return p
}

// Add appends a pair and returns the extended Params.
func (p Params) Add(key string, value any) Params {
	return append(p, Param{Key: key, Value: value})
}

// MarshalJSON encodes Params as a JSON object in insertion order.
func (p Params) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kv := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(kv.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(kv.Value)
		if err != nil {
			return nil, fmt.Errorf("params: key %q: %w", kv.Key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// enumerate lists the top-level fields of payload in a stable order.
// ok is false for payloads that have no enumerable fields
// (strings, slices, scalars).
func enumerate(payload any) (Params, bool) {
	switch p := payload.(type) {
	case nil:
		return nil, true
	case Params:
		return p, true
	case url.Values:
		keys := sortedKeys(p)
		out := make(Params, 0, len(p))
		for _, k := range keys {
			for _, v := range p[k] {
				out = append(out, Param{Key: k, Value: v})
			}
		}
		return out, true
	case map[string]any:
		out := make(Params, 0, len(p))
		for _, k := range sortedKeys(p) {
			out = append(out, Param{Key: k, Value: p[k]})
		}
		return out, true
	case map[string]string:
		out := make(Params, 0, len(p))
		for _, k := range sortedKeys(p) {
			out = append(out, Param{Key: k, Value: p[k]})
		}
		return out, true
	}

	rv := reflect.ValueOf(payload)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, true
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		slices.Sort(keys)
		out := make(Params, 0, len(keys))
		for _, k := range keys {
			v := rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key()))
			out = append(out, Param{Key: k, Value: v.Interface()})
		}
		return out, true
	case reflect.Struct:
		if _, isFile := rv.Interface().(FileField); isFile {
			return nil, false
		}
		return structParams(rv), true
	}
	return nil, false
}

// structParams lists exported fields in declaration order using json tag names.
func structParams(rv reflect.Value) Params {
	rt := rv.Type()
	out := make(Params, 0, rt.NumField())
	for i := range rt.NumField() {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Name
		omitEmpty := false
		if tag, ok := f.Tag.Lookup("json"); ok {
			parts := strings.Split(tag, ",")
			if parts[0] == "-" {
				continue
			}
			if parts[0] != "" {
				name = parts[0]
			}
			omitEmpty = slices.Contains(parts[1:], "omitempty")
		}
		fv := rv.Field(i)
		if omitEmpty && fv.IsZero() {
			continue
		}
		out = append(out, Param{Key: name, Value: fv.Interface()})
	}
	return out
}

// encodeQuery renders payload as key=value pairs joined by '&'.
// Strings are used verbatim; non-enumerable payloads encode to "".
func encodeQuery(payload any) string {
	if s, ok := payload.(string); ok {
		return s
	}
	params, ok := enumerate(payload)
	if !ok {
		return ""
	}
	pairs := make([]string, 0, len(params))
	for _, kv := range params {
		pairs = append(pairs, url.QueryEscape(kv.Key)+"="+url.QueryEscape(formatValue(kv.Value)))
	}
	return strings.Join(pairs, "&")
}

// formatValue renders a scalar the way it appears in a query string.
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case fmt.Stringer:
		return x.String()
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Struct, reflect.Slice, reflect.Array:
		b, err := json.Marshal(rv.Interface())
		if err == nil {
			return string(b)
		}
	}
	return fmt.Sprint(rv.Interface())
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
