package httpclient

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
)

// TLSConfig holds client-side TLS settings for the default transport.
type TLSConfig struct {
	// SkipVerify disables server certificate verification.
	SkipVerify bool `yaml:"skip_verify" mapstructure:"skip_verify" json:"skip_verify"`
	// CAFile is a PEM bundle of extra root certificates.
	CAFile string `yaml:"ca_file" mapstructure:"ca_file" json:"ca_file" validate:"omitempty,file"`
	// CertFile and KeyFile configure a client certificate for mTLS.
	CertFile string `yaml:"cert_file" mapstructure:"cert_file" json:"cert_file" validate:"required_with=KeyFile"`
	KeyFile  string `yaml:"key_file" mapstructure:"key_file" json:"key_file" validate:"required_with=CertFile"`
	// ServerName overrides the SNI host name.
	ServerName string `yaml:"server_name" mapstructure:"server_name" json:"server_name"`
}

// Build returns a *tls.Config, or nil when no setting is configured.
func (c *TLSConfig) Build() (*tls.Config, error) {
	if c == nil || !c.enabled() {
		return nil, nil
	}
	cfg := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: c.SkipVerify, //nolint:gosec // opt-in via configuration
		ServerName:         c.ServerName,
	}

	if c.CAFile != "" {
		ca, err := os.ReadFile(c.CAFile)
		if err != nil {
			return nil, fmt.Errorf("httpclient/tls: read CA file: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(ca) {
			return nil, fmt.Errorf("httpclient/tls: no certificates found in %s", c.CAFile)
		}
		cfg.RootCAs = pool
	}

	if c.CertFile != "" || c.KeyFile != "" {
		if c.CertFile == "" || c.KeyFile == "" {
			return nil, fmt.Errorf("httpclient/tls: both cert_file and key_file must be provided together")
		}
		cert, err := tls.LoadX509KeyPair(c.CertFile, c.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("httpclient/tls: load client certificate: %w", err)
		}
		cfg.Certificates = []tls.Certificate{cert}
	}
	return cfg, nil
}

func (c *TLSConfig) enabled() bool {
	return c.SkipVerify || c.CAFile != "" || c.CertFile != "" || c.KeyFile != "" || c.ServerName != ""
}
