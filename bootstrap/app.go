package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/fetchkit/component"
	"github.com/kbukum/fetchkit/logger"
)

// App owns the components of one process. C is the config type.
type App[C Config] struct {
	Name       string
	Version    string
	Cfg        C
	Components *component.Registry
	Logger     *logger.Logger

	gracefulTimeout time.Duration
	onStart         []Hook
	onStop          []Hook
}

// NewApp creates an application from a typed config. It applies defaults,
// validates the config and initializes the logger.
func NewApp[C Config](cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	base := cfg.GetServiceConfig()

	o := appOptions{gracefulTimeout: DefaultGracefulTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	app := &App[C]{
		Name:            base.Name,
		Version:         o.version,
		Cfg:             cfg,
		Logger:          o.logger,
		gracefulTimeout: o.gracefulTimeout,
	}
	// Before the registry, which captures its logger on creation.
	if app.Logger == nil {
		logger.Init(base.Logging)
		app.Logger = logger.GetGlobalLogger()
	}
	app.Components = component.NewRegistry()
	return app, nil
}

// RegisterComponent adds a component to the application's registry.
func (a *App[C]) RegisterComponent(c component.Component) error {
	return a.Components.Register(c)
}

// ReadyCheck verifies that all registered components are healthy.
func (a *App[C]) ReadyCheck(ctx context.Context) error {
	var unhealthy []error
	for _, h := range a.Components.HealthAll(ctx) {
		if h.Status != component.StatusHealthy {
			unhealthy = append(unhealthy, fmt.Errorf("%s=%s %s", h.Name, h.Status, h.Message))
		}
	}
	if len(unhealthy) > 0 {
		return fmt.Errorf("unhealthy components: %w", errors.Join(unhealthy...))
	}
	return nil
}

// RunTask starts every component, runs task and shuts down when the task
// returns or the process receives SIGINT/SIGTERM. The task error wins over
// shutdown errors.
func (a *App[C]) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	if err := a.startup(ctx); err != nil {
		return err
	}

	taskCtx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	taskErr := task(taskCtx)
	if taskCtx.Err() != nil && ctx.Err() == nil {
		a.Logger.Info("Received signal, task canceled")
	}

	if stopErr := a.Shutdown(); stopErr != nil && taskErr == nil {
		return stopErr
	}
	return taskErr
}

func (a *App[C]) startup(ctx context.Context) error {
	a.Logger.Debug("Starting application", logger.Fields("name", a.Name, "version", a.Version))

	if err := a.Components.StartAll(ctx); err != nil {
		return fmt.Errorf("failed to start components: %w", err)
	}
	if err := runStartHooks(ctx, a.onStart); err != nil {
		return fmt.Errorf("onStart hook failed: %w", err)
	}
	if err := a.ReadyCheck(ctx); err != nil {
		a.Logger.Warn("Ready check reported issues", logger.Fields(logger.FieldError, err.Error()))
	}
	return nil
}

// Shutdown runs the OnStop hooks and stops all components within the
// graceful timeout.
func (a *App[C]) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	var errs []error
	if err := runStopHooks(ctx, a.onStop); err != nil {
		a.Logger.Error("Stop hooks failed", logger.Fields(logger.FieldError, err.Error()))
		errs = append(errs, err)
	}
	if err := a.Components.StopAll(ctx); err != nil {
		a.Logger.Error("Shutdown completed with errors", logger.Fields(logger.FieldError, err.Error()))
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
