package rest

import (
	"context"
	"testing"

	"github.com/kbukum/fetchkit/httpclient"
	"github.com/kbukum/fetchkit/httpclient/fetchtest"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginData struct {
	Token string `json:"token"`
}

var (
	login      = MustService[loginRequest, Envelope[loginData]]("/api/login", httpclient.MethodPost, httpclient.ContentTypeJSON)
	checkToken = MustService[NoPayload, Envelope[bool]]("/api/checkToken", httpclient.MethodGet, httpclient.ContentTypeJSON)
)

func newClient(t *testing.T) *httpclient.Client {
	t.Helper()
	b := fetchtest.NewBackend(t)
	c, err := httpclient.New(httpclient.WithDefaults(httpclient.RequestConfig{BaseURL: httpclient.Ptr(b.URL)}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c
}

func TestCall_Login(t *testing.T) {
	c := newClient(t)

	res, err := Call(context.Background(), c, login, loginRequest{Username: "a", Password: "b"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Data.Success || res.Data.Data.Token != fetchtest.DefaultToken {
		t.Errorf("unexpected envelope: %+v", res.Data)
	}
	if res.Code != 200 || res.Message != "OK" || res.Response == nil {
		t.Errorf("unexpected status: %d %q", res.Code, res.Message)
	}
}

func TestCall_LoginWrongPassword(t *testing.T) {
	c := newClient(t)

	res, err := Call(context.Background(), c, login, loginRequest{Username: "a", Password: "wrong"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Data.Success || res.Data.Code != 1 || res.Data.Data.Token != "" {
		t.Errorf("expected failed login envelope, got %+v", res.Data)
	}
}

func TestCall_NoPayloadAndAuth(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	_, err := Call(ctx, c, checkToken, NoPayload{}, nil)
	if !IsAuth(err) {
		t.Fatalf("expected auth error, got %v", err)
	}

	res, err := Call(ctx, c, checkToken, NoPayload{}, &httpclient.RequestConfig{
		Before: httpclient.BearerAuth(fetchtest.DefaultToken),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Data.Success || !res.Data.Data {
		t.Errorf("unexpected envelope: %+v", res.Data)
	}
}

func TestCall_DecodeMismatch(t *testing.T) {
	c := newClient(t)
	svc := MustService[NoPayload, []string]("/api/checkToken", httpclient.MethodGet, "")

	_, err := Call(context.Background(), c, svc, NoPayload{}, &httpclient.RequestConfig{
		Before: httpclient.BearerAuth(fetchtest.DefaultToken),
	})
	if !IsDecode(err) {
		t.Errorf("expected decode error, got %v", err)
	}
}

func TestCall_EmptyBody(t *testing.T) {
	c := newClient(t)
	svc := MustService[NoPayload, map[string]any]("/status/204", httpclient.MethodGet, "")

	res, err := Call(context.Background(), c, svc, NoPayload{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Data != nil || res.Code != 204 {
		t.Errorf("expected zero value for empty body, got %+v", res)
	}
}

func TestErrors_Classification(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	tests := []struct {
		path  string
		check func(error) bool
	}{
		{"/status/404", IsNotFound},
		{"/status/403", IsAuth},
		{"/status/502", IsServerError},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			svc := MustService[NoPayload, string](tc.path, httpclient.MethodGet, "")
			_, err := Call(ctx, c, svc, NoPayload{}, nil)
			if !tc.check(err) {
				t.Errorf("unexpected classification for %v", err)
			}
		})
	}
}

func TestNewService_Invalid(t *testing.T) {
	if _, err := NewService[NoPayload, string]("", httpclient.MethodGet, ""); err == nil {
		t.Error("expected error for empty URL")
	}
	if _, err := NewService[NoPayload, string]("/x", "TRACE", ""); err == nil {
		t.Error("expected error for unsupported method")
	}

	defer func() {
		if recover() == nil {
			t.Error("expected MustService to panic")
		}
	}()
	MustService[NoPayload, string]("/x", httpclient.MethodGet, "text/html")
}
