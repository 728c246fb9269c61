package httpclient

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kbukum/fetchkit/config"
)

func TestSettings_ApplyDefaults(t *testing.T) {
	var s Settings
	s.ApplyDefaults()
	if s.Timeout != DefaultTimeout {
		t.Errorf("timeout = %v, want %v", s.Timeout, DefaultTimeout)
	}
	if s.MaxRedirects != DefaultMaxRedirects {
		t.Errorf("max redirects = %d, want %d", s.MaxRedirects, DefaultMaxRedirects)
	}
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name    string
		s       Settings
		wantErr bool
	}{
		{"empty", Settings{}, false},
		{"full", Settings{BaseURL: "https://api.example.com", Credentials: "include", Mode: "cors", Redirect: "manual", Cache: "no-store", Referrer: "no-referrer"}, false},
		{"bad url", Settings{BaseURL: "not a url"}, true},
		{"bad credentials", Settings{Credentials: "sometimes"}, true},
		{"bad redirect", Settings{Redirect: "bounce"}, true},
		{"negative timeout", Settings{Timeout: -time.Second}, true},
		{"known charset", Settings{ResponseCharset: "gbk"}, false},
		{"unknown charset", Settings{ResponseCharset: "klingon"}, true},
		{"header names", Settings{Headers: map[string]string{"Accept-Language": "en", "x-trace": "1"}}, false},
		{"bad header name", Settings{Headers: map[string]string{"Bad Header": "x"}}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.s.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestSettings_ToConfig(t *testing.T) {
	t.Run("empty settings keep lower layers", func(t *testing.T) {
		merged := DefaultConfig().Merge(Ptr(Settings{}.ToConfig()))
		if merged.timeout() != DefaultTimeout || merged.credentials() != CredentialsOmit {
			t.Errorf("unexpected merge of empty settings: %+v", merged)
		}
	})

	t.Run("populated", func(t *testing.T) {
		cfg := Settings{
			BaseURL:         "https://api.example.com",
			Timeout:         5 * time.Second,
			Credentials:     "include",
			Redirect:        "error",
			ResponseCharset: "gbk",
			Headers:         map[string]string{"accept-language": "en"},
		}.ToConfig()

		if cfg.baseURL() != "https://api.example.com" || cfg.timeout() != 5*time.Second {
			t.Errorf("unexpected config: %+v", cfg)
		}
		if cfg.credentials() != CredentialsInclude || cfg.redirect() != RedirectError {
			t.Errorf("unexpected modes: %+v", cfg)
		}
		if cfg.ResponseCharset == nil || *cfg.ResponseCharset != "gbk" {
			t.Errorf("unexpected charset: %v", cfg.ResponseCharset)
		}
		if cfg.Headers.Get("Accept-Language") != "en" {
			t.Errorf("unexpected headers: %v", cfg.Headers)
		}
		if cfg.Mode != nil || cfg.Cache != nil {
			t.Error("unset settings must stay nil")
		}
	})
}

func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	yml := `name: web-client
fetch:
  base_url: https://api.example.com
  timeout: 5s
  credentials: include
  headers:
    accept-language: en
telemetry:
  endpoint: collector:4318
  sample_rate: 0.5
`
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}

	fc, err := LoadSettings("web-client", config.WithConfigFile(path), config.WithEnvFile(filepath.Join(dir, ".env")))
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if fc.Name != "web-client" || fc.Environment != "development" {
		t.Errorf("unexpected service config: %+v", fc.ServiceConfig)
	}
	if fc.Fetch.BaseURL != "https://api.example.com" || fc.Fetch.Timeout != 5*time.Second {
		t.Errorf("unexpected fetch settings: %+v", fc.Fetch)
	}
	if fc.Fetch.MaxRedirects != DefaultMaxRedirects {
		t.Errorf("expected default max redirects, got %d", fc.Fetch.MaxRedirects)
	}
	if fc.Fetch.Headers["accept-language"] != "en" {
		t.Errorf("unexpected headers: %v", fc.Fetch.Headers)
	}

	tc := fc.TelemetryConfig("1.2.3")
	if !tc.Enabled() || tc.SampleRate != 0.5 || tc.Interval == 0 {
		t.Errorf("unexpected telemetry section: %+v", tc)
	}
	if tc.ServiceName != "web-client" || tc.ServiceVersion != "1.2.3" || tc.Environment != "development" {
		t.Errorf("telemetry config must carry the service identity: %+v", tc)
	}
}

func TestLoadSettings_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	for name, yml := range map[string]string{
		"credentials": "fetch:\n  credentials: sometimes\n",
		"sample rate": "telemetry:\n  sample_rate: 2\n",
	} {
		if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadSettings("web-client", config.WithConfigFile(path), config.WithEnvFile(filepath.Join(dir, ".env"))); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}
