package httpclient

import (
	"encoding/json"
	"net/url"
	"testing"
)

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Remember bool   `json:"remember,omitempty"`
	internal string
	Skipped  string `json:"-"`
}

func TestEncodeQuery(t *testing.T) {
	tests := []struct {
		name    string
		payload any
		want    string
	}{
		{"nil", nil, ""},
		{"empty map", map[string]any{}, ""},
		{"map sorted keys", map[string]any{"b": 2, "a": "x"}, "a=x&b=2"},
		{"string map", map[string]string{"q": "go"}, "q=go"},
		{"params keep order", NewParams("z", 1, "a", 2), "z=1&a=2"},
		{"struct declaration order", loginPayload{Username: "a", Password: "b"}, "username=a&password=b"},
		{"struct pointer", &loginPayload{Username: "a", Password: "b", Remember: true}, "username=a&password=b&remember=true"},
		{"url values", url.Values{"tag": {"x", "y"}, "a": {"1"}}, "a=1&tag=x&tag=y"},
		{"string verbatim", "raw=1&x=2", "raw=1&x=2"},
		{"slice encodes empty", []string{"a", "b"}, ""},
		{"scalar encodes empty", 42, ""},
		{"escaping", NewParams("q", "a b&c", "k=", "ü"), "q=a+b%26c&k%3D=%C3%BC"},
		{"nil value", NewParams("empty", nil), "empty="},
		{"nested value as json", NewParams("f", map[string]int{"x": 1}), "f=%7B%22x%22%3A1%7D"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := encodeQuery(tc.payload); got != tc.want {
				t.Errorf("encodeQuery() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestEnumerate_NonEnumerable(t *testing.T) {
	for _, p := range []any{"text", []int{1}, 3.5, map[int]string{1: "a"}, FileField{FileName: "a.txt"}} {
		if _, ok := enumerate(p); ok {
			t.Errorf("expected %T to be non-enumerable", p)
		}
	}
}

func TestNewParams_OddCount(t *testing.T) {
	p := NewParams("a", 1, "b")
	if len(p) != 2 || p[1].Key != "b" || p[1].Value != nil {
		t.Errorf("unexpected params: %+v", p)
	}
}

func TestParams_MarshalJSON_KeepsOrder(t *testing.T) {
	b, err := json.Marshal(NewParams("username", "a", "password", "b", "n", 3))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"username":"a","password":"b","n":3}` {
		t.Errorf("unexpected json: %s", b)
	}
}

func TestParams_Add(t *testing.T) {
	p := Params{}.Add("a", 1).Add("b", 2)
	if got := encodeQuery(p); got != "a=1&b=2" {
		t.Errorf("got %q", got)
	}
}
