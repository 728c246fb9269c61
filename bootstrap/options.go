package bootstrap

import (
	"time"

	"github.com/kbukum/fetchkit/logger"
)

// DefaultGracefulTimeout bounds Shutdown when WithGracefulTimeout is unset.
const DefaultGracefulTimeout = 15 * time.Second

// Option configures NewApp.
type Option func(*appOptions)

type appOptions struct {
	logger          *logger.Logger
	version         string
	gracefulTimeout time.Duration
}

// WithLogger uses l instead of initializing the global logger from the
// config's logging section.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) { o.logger = l }
}

// WithVersion sets the version reported in startup logs.
func WithVersion(v string) Option {
	return func(o *appOptions) { o.version = v }
}

// WithGracefulTimeout bounds how long Shutdown may take.
func WithGracefulTimeout(d time.Duration) Option {
	return func(o *appOptions) { o.gracefulTimeout = d }
}
