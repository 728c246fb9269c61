package config

import (
	"github.com/kbukum/fetchkit/logger"
	"github.com/kbukum/fetchkit/validation"
)

// ServiceConfig holds the fields shared by every fetchkit program. Embed it
// squashed so its keys sit at the top of config.yml:
//
//	type MyConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Fetch httpclient.Settings `yaml:"fetch" mapstructure:"fetch"`
//	}
type ServiceConfig struct {
	Name        string        `yaml:"name" mapstructure:"name" json:"name" validate:"required"`
	Environment string        `yaml:"environment" mapstructure:"environment" json:"environment" validate:"oneof=development staging production"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging" json:"logging"`
}

// ApplyDefaults selects development mode, which logs at debug level unless
// a level is configured.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" && c.Logging.Level == "" {
		c.Logging.Level = "debug"
	}
	c.Logging.ApplyDefaults()
}

// Validate checks the service fields, then the logging section.
func (c *ServiceConfig) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	return c.Logging.Validate()
}

// GetServiceConfig returns c; it lets bootstrap reach the embedded fields
// of any config that embeds ServiceConfig.
func (c *ServiceConfig) GetServiceConfig() *ServiceConfig {
	return c
}
