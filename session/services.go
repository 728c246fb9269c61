package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/kbukum/fetchkit/httpclient"
	"github.com/kbukum/fetchkit/httpclient/rest"
)

// ErrLoginRejected is returned when the login endpoint answers with
// success=false.
var ErrLoginRejected = errors.New("session: login rejected")

// Credentials is the login request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenData is the data field of a successful login response.
type TokenData struct {
	Token string `json:"token"`
}

var (
	// CheckTokenService reports whether the sent token is still accepted.
	CheckTokenService = rest.MustService[rest.NoPayload, rest.Envelope[bool]](
		"/api/checkToken", httpclient.MethodGet, httpclient.ContentTypeJSON)

	// LoginService exchanges credentials for a token.
	LoginService = rest.MustService[Credentials, rest.Envelope[TokenData]](
		"/api/login", httpclient.MethodPost, httpclient.ContentTypeJSON)
)

// Login calls LoginService and stores the returned token.
func Login(ctx context.Context, c *httpclient.Client, store *Store, creds Credentials) (string, error) {
	res, err := rest.Call(ctx, c, LoginService, creds, nil)
	if err != nil {
		return "", err
	}
	if !res.Data.Success || res.Data.Data.Token == "" {
		return "", fmt.Errorf("%w: %s", ErrLoginRejected, res.Data.Message)
	}
	store.Set(res.Data.Data.Token)
	return res.Data.Data.Token, nil
}

// Check calls CheckTokenService with the stored token. A 401 clears the
// store and reports false without an error.
func Check(ctx context.Context, c *httpclient.Client, store *Store) (bool, error) {
	cfg := store.Config()
	res, err := rest.Call(ctx, c, CheckTokenService, rest.NoPayload{}, &cfg)
	if rest.IsAuth(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return res.Data.Success, nil
}
