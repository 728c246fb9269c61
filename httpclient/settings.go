package httpclient

import (
	"fmt"
	"net/http"
	"time"

	"github.com/kbukum/fetchkit/config"
	"github.com/kbukum/fetchkit/observability"
	"github.com/kbukum/fetchkit/validation"
)

// Settings is the file and environment form of the process-wide defaults.
//
//	fetch:
//	  base_url: https://api.example.com
//	  timeout: 10s
//	  credentials: include
//	  headers:
//	    accept-language: en
type Settings struct {
	BaseURL         string            `yaml:"base_url" mapstructure:"base_url" json:"base_url" validate:"omitempty,url"`
	Timeout         time.Duration     `yaml:"timeout" mapstructure:"timeout" json:"timeout" validate:"gte=0"`
	Cache           string            `yaml:"cache" mapstructure:"cache" json:"cache" validate:"omitempty,oneof=default no-store reload no-cache force-cache only-if-cached"`
	Credentials     string            `yaml:"credentials" mapstructure:"credentials" json:"credentials" validate:"omitempty,oneof=omit same-origin include"`
	Mode            string            `yaml:"mode" mapstructure:"mode" json:"mode" validate:"omitempty,oneof=same-origin no-cors cors navigate"`
	Redirect        string            `yaml:"redirect" mapstructure:"redirect" json:"redirect" validate:"omitempty,oneof=follow manual error"`
	Referrer        string            `yaml:"referrer" mapstructure:"referrer" json:"referrer" validate:"omitempty,oneof=client no-referrer"`
	ResponseCharset string            `yaml:"response_charset" mapstructure:"response_charset" json:"response_charset" validate:"omitempty,charset"`
	Headers         map[string]string `yaml:"headers" mapstructure:"headers" json:"headers" validate:"dive,keys,header_name,endkeys"`
	MaxRedirects    int               `yaml:"max_redirects" mapstructure:"max_redirects" json:"max_redirects" validate:"gte=0"`
	TLS             *TLSConfig        `yaml:"tls" mapstructure:"tls" json:"tls"`
}

// ApplyDefaults fills unset values.
func (s *Settings) ApplyDefaults() {
	if s.Timeout == 0 {
		s.Timeout = DefaultTimeout
	}
	if s.MaxRedirects == 0 {
		s.MaxRedirects = DefaultMaxRedirects
	}
}

// Validate checks the settings.
func (s *Settings) Validate() error {
	if err := validation.Validate(s); err != nil {
		return fmt.Errorf("httpclient settings: %w", err)
	}
	return nil
}

// ToConfig converts the settings into a configuration layer. Empty
// settings stay nil so they do not override lower layers.
func (s Settings) ToConfig() RequestConfig {
	var cfg RequestConfig
	if s.BaseURL != "" {
		cfg.BaseURL = Ptr(s.BaseURL)
	}
	if s.Timeout > 0 {
		cfg.Timeout = Ptr(s.Timeout)
	}
	if s.Cache != "" {
		cfg.Cache = Ptr(CacheMode(s.Cache))
	}
	if s.Credentials != "" {
		cfg.Credentials = Ptr(CredentialsMode(s.Credentials))
	}
	if s.Mode != "" {
		cfg.Mode = Ptr(CORSMode(s.Mode))
	}
	if s.Redirect != "" {
		cfg.Redirect = Ptr(RedirectPolicy(s.Redirect))
	}
	if s.Referrer != "" {
		cfg.Referrer = Ptr(ReferrerPolicy(s.Referrer))
	}
	if s.ResponseCharset != "" {
		cfg.ResponseCharset = Ptr(s.ResponseCharset)
	}
	if len(s.Headers) > 0 {
		cfg.Headers = http.Header{}
		for k, v := range s.Headers {
			cfg.Headers.Set(k, v)
		}
	}
	return cfg
}

// TransportConfig returns the transport part of the settings.
func (s Settings) TransportConfig() TransportConfig {
	return TransportConfig{TLS: s.TLS, MaxRedirects: s.MaxRedirects}
}

// FileConfig is the layout LoadSettings reads: the shared service fields,
// a fetch section and an optional telemetry section.
type FileConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Fetch                Settings             `yaml:"fetch" mapstructure:"fetch"`
	Telemetry            observability.Config `yaml:"telemetry" mapstructure:"telemetry"`
}

// LoadSettings reads config.yml and .env files for serviceName, applies
// defaults and validates the result.
func LoadSettings(serviceName string, opts ...config.LoaderOption) (*FileConfig, error) {
	var fc FileConfig
	if err := config.LoadConfig(serviceName, &fc, opts...); err != nil {
		return nil, err
	}
	if fc.Name == "" {
		fc.Name = serviceName
	}
	fc.ApplyDefaults()
	if err := fc.Validate(); err != nil {
		return nil, err
	}
	return &fc, nil
}

// ApplyDefaults fills unset values in every section.
func (fc *FileConfig) ApplyDefaults() {
	fc.ServiceConfig.ApplyDefaults()
	fc.Fetch.ApplyDefaults()
	fc.Telemetry.ApplyDefaults()
}

// Validate checks every section.
func (fc *FileConfig) Validate() error {
	if err := fc.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := fc.Fetch.Validate(); err != nil {
		return err
	}
	if err := validation.Validate(&fc.Telemetry); err != nil {
		return fmt.Errorf("telemetry settings: %w", err)
	}
	return nil
}

// TelemetryConfig returns the telemetry section stamped with the service
// identity.
func (fc *FileConfig) TelemetryConfig(serviceVersion string) observability.Config {
	tc := fc.Telemetry
	tc.ServiceName = fc.Name
	tc.ServiceVersion = serviceVersion
	tc.Environment = fc.Environment
	return tc
}
