package httpclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"regexp"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

const defaultCharset = "utf-8"

var charsetPattern = regexp.MustCompile(`(?i)charset=["']?([^;"'\s]+)`)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// negotiation is the content type and charset a body is decoded with.
type negotiation struct {
	ContentType ContentType
	Charset     string
}

// negotiate inspects the Content-Type header. Overrides from the request
// configuration take precedence over what the server announced.
func negotiate(header http.Header, typeOverride *ContentType, charsetOverride *string) negotiation {
	n := negotiation{ContentType: ContentTypeText, Charset: defaultCharset}

	if value := header.Get("Content-Type"); value != "" {
		mt, params, err := mime.ParseMediaType(value)
		if ct := ContentType(mt); ct.Known() {
			n.ContentType = ct
		}
		if cs := params["charset"]; err == nil && cs != "" {
			n.Charset = cs
		} else if m := charsetPattern.FindStringSubmatch(value); m != nil {
			n.Charset = m[1]
		}
	}

	if typeOverride != nil && *typeOverride != "" {
		n.ContentType = *typeOverride
	}
	if charsetOverride != nil && *charsetOverride != "" {
		n.Charset = *charsetOverride
	}
	n.Charset = strings.ToLower(strings.TrimSpace(n.Charset))
	return n
}

// decodeText converts raw bytes in the given charset to a UTF-8 string.
func decodeText(raw []byte, charset string) (string, error) {
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return "", NewParseError(fmt.Errorf("unsupported charset %q", charset))
	}
	if name, _ := htmlindex.Name(enc); name == defaultCharset {
		return string(bytes.TrimPrefix(raw, utf8BOM)), nil
	}
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", NewParseError(fmt.Errorf("decode %s body: %w", charset, err))
	}
	return string(out), nil
}

// decodeBody returns the decoded text and the value handed to callers:
// parsed JSON for application/json, the text otherwise.
func decodeBody(raw []byte, n negotiation) (string, any, error) {
	text, err := decodeText(raw, n.Charset)
	if err != nil {
		return "", nil, err
	}
	if n.ContentType != ContentTypeJSON {
		return text, text, nil
	}
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return text, nil, NewParseError(err)
	}
	return text, v, nil
}
