package bootstrap

import (
	"context"
	"errors"
	"fmt"
)

// Hook is a lifecycle callback.
type Hook func(ctx context.Context) error

// OnStart registers hooks that run after the components started and before
// the task. The first failing hook aborts startup.
func (a *App[C]) OnStart(hooks ...Hook) {
	a.onStart = append(a.onStart, hooks...)
}

// OnStop registers hooks that run on shutdown before components stop, in
// reverse registration order. Every hook runs; their errors are joined.
func (a *App[C]) OnStop(hooks ...Hook) {
	a.onStop = append(a.onStop, hooks...)
}

func runStartHooks(ctx context.Context, hooks []Hook) error {
	for i, h := range hooks {
		if err := h(ctx); err != nil {
			return fmt.Errorf("start hook %d: %w", i, err)
		}
	}
	return nil
}

func runStopHooks(ctx context.Context, hooks []Hook) error {
	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		if err := hooks[i](ctx); err != nil {
			errs = append(errs, fmt.Errorf("stop hook %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}
