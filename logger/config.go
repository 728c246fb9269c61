package logger

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Output formats.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Config controls how fetchkit writes its logs.
type Config struct {
	Level   string `yaml:"level" mapstructure:"level"`
	Format  string `yaml:"format" mapstructure:"format"`
	Output  string `yaml:"output" mapstructure:"output"` // stdout, stderr or discard
	NoColor bool   `yaml:"no_color" mapstructure:"no_color"`
	Caller  bool   `yaml:"caller" mapstructure:"caller"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = FormatConsole
	}
	if c.Output == "" {
		c.Output = "stdout"
	}
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(strings.ToLower(c.Level)); err != nil || c.Level == "" {
		return fmt.Errorf("logging.level %q is not a zerolog level", c.Level)
	}
	switch strings.ToLower(c.Format) {
	case FormatJSON, FormatConsole:
	default:
		return fmt.Errorf("logging.format must be %q or %q (got: %s)", FormatJSON, FormatConsole, c.Format)
	}
	switch strings.ToLower(c.Output) {
	case "stdout", "stderr", "discard":
	default:
		return fmt.Errorf("logging.output must be stdout, stderr or discard (got: %s)", c.Output)
	}
	return nil
}

func (c *Config) level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(c.Level))
	if err != nil || c.Level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}
