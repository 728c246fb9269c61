package httpclient

import (
	"mime"
	"net/http"
	"strings"
)

// Method is the HTTP verb a service or call uses.
type Method string

const (
	MethodGet    Method = http.MethodGet
	MethodPost   Method = http.MethodPost
	MethodPut    Method = http.MethodPut
	MethodDelete Method = http.MethodDelete
	MethodHead   Method = http.MethodHead
	MethodPatch  Method = http.MethodPatch
)

// ContentType is one of the media types the client knows how to encode or decode.
type ContentType string

const (
	ContentTypeJSON      ContentType = "application/json"
	ContentTypeForm      ContentType = "application/x-www-form-urlencoded"
	ContentTypeMultipart ContentType = "multipart/form-data"
	ContentTypeText      ContentType = "text/plain"
)

// Known reports whether ct belongs to the closed set of content types.
func (ct ContentType) Known() bool {
	switch ct {
	case ContentTypeJSON, ContentTypeForm, ContentTypeMultipart, ContentTypeText:
		return true
	}
	return false
}

// mediaType extracts the media type of a Content-Type header value and
// matches it exactly against the known set. Parameters are ignored.
func mediaType(value string) (ContentType, bool) {
	if value == "" {
		return "", false
	}
	mt, _, err := mime.ParseMediaType(value)
	if mt == "" && err != nil {
		mt = strings.ToLower(strings.TrimSpace(strings.SplitN(value, ";", 2)[0]))
	}
	ct := ContentType(mt)
	return ct, ct.Known()
}

// CacheMode mirrors the browser fetch cache modes.
type CacheMode string

const (
	CacheDefault      CacheMode = "default"
	CacheNoStore      CacheMode = "no-store"
	CacheReload       CacheMode = "reload"
	CacheNoCache      CacheMode = "no-cache"
	CacheForceCache   CacheMode = "force-cache"
	CacheOnlyIfCached CacheMode = "only-if-cached"
)

// CredentialsMode decides when cookies from the jar are attached.
type CredentialsMode string

const (
	CredentialsOmit       CredentialsMode = "omit"
	CredentialsSameOrigin CredentialsMode = "same-origin"
	CredentialsInclude    CredentialsMode = "include"
)

// CORSMode restricts which requests may be issued relative to BaseURL.
type CORSMode string

const (
	ModeSameOrigin CORSMode = "same-origin"
	ModeNoCORS     CORSMode = "no-cors"
	ModeCORS       CORSMode = "cors"
	ModeNavigate   CORSMode = "navigate"
)

// RedirectPolicy controls how 3xx responses are handled.
type RedirectPolicy string

const (
	RedirectFollow RedirectPolicy = "follow"
	RedirectManual RedirectPolicy = "manual"
	RedirectError  RedirectPolicy = "error"
)

// ReferrerPolicy controls the Referer header.
type ReferrerPolicy string

const (
	ReferrerClient     ReferrerPolicy = "client"
	ReferrerNoReferrer ReferrerPolicy = "no-referrer"
)

// Ptr returns a pointer to v. Handy for filling optional RequestConfig fields.
func Ptr[T any](v T) *T {
	return &v
}
