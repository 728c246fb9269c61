package session

import (
	"net/http"
	"sync"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/fetchkit/httpclient"
)

// DefaultScheme prefixes the token in the Authorization header.
const DefaultScheme = "Bearer"

// Option configures a Store.
type Option func(*Store)

// WithScheme sets the Authorization scheme. An empty scheme sends the raw token.
func WithScheme(scheme string) Option {
	return func(s *Store) { s.scheme = scheme }
}

// WithLeeway treats a token as expired this long before its exp claim.
func WithLeeway(d time.Duration) Option {
	return func(s *Store) { s.leeway = d }
}

// WithClock replaces time.Now for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Store holds the current session token. It is safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	token     string
	expiresAt time.Time

	scheme string
	leeway time.Duration
	now    func() time.Time
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{scheme: DefaultScheme, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Set stores token. If token is a JWT carrying an exp claim, the expiry is
// remembered; opaque tokens never expire.
func (s *Store) Set(token string) {
	exp := expiry(token)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.expiresAt = exp
}

// Token returns the stored token, or false when none is set or it has expired.
func (s *Store) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.token == "" {
		return "", false
	}
	if !s.expiresAt.IsZero() && !s.now().Before(s.expiresAt.Add(-s.leeway)) {
		return "", false
	}
	return s.token, true
}

// ExpiresAt returns the expiry of the stored token, if known.
func (s *Store) ExpiresAt() (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt, !s.expiresAt.IsZero()
}

// Clear forgets the token.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.expiresAt = time.Time{}
}

// Before returns a hook that sends the current token with every call.
func (s *Store) Before() httpclient.BeforeHook {
	return httpclient.TokenAuth(s.scheme, s.Token)
}

// OnUnauthorized returns a status hook that clears the store.
func (s *Store) OnUnauthorized() httpclient.StatusHook {
	return func(*httpclient.RequestConfig) { s.Clear() }
}

// Config returns a configuration layer wiring Before and OnUnauthorized,
// suitable for Client.Configure.
func (s *Store) Config() httpclient.RequestConfig {
	return httpclient.RequestConfig{
		Before:   s.Before(),
		OnStatus: map[int]httpclient.StatusHook{http.StatusUnauthorized: s.OnUnauthorized()},
	}
}

// expiry reads the exp claim of a JWT without verifying it.
func expiry(token string) time.Time {
	var claims gojwt.RegisteredClaims
	if _, _, err := gojwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
