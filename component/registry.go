package component

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kbukum/fetchkit/logger"
)

// StopTimeout bounds how long a single component may take to stop.
const StopTimeout = 10 * time.Second

type entry struct {
	component Component
	started   bool
}

// Registry starts components in registration order and stops them in reverse.
type Registry struct {
	mu      sync.RWMutex
	entries []*entry
	lookup  map[string]*entry
	log     *logger.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		lookup: make(map[string]*entry),
		log:    logger.Get("component"),
	}
}

// Register adds c. Register dependencies first.
func (r *Registry) Register(c Component) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := c.Name()
	if _, exists := r.lookup[name]; exists {
		return fmt.Errorf("component %s already registered", name)
	}
	e := &entry{component: c}
	r.entries = append(r.entries, e)
	r.lookup[name] = e
	return nil
}

// StartAll starts every registered component, stopping at the first failure.
func (r *Registry) StartAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.entries {
		name := e.component.Name()
		if err := e.component.Start(ctx); err != nil {
			r.log.Error("component start failed", logger.Fields(logger.FieldComponent, name, logger.FieldError, err.Error()))
			return fmt.Errorf("failed to start %s: %w", name, err)
		}
		e.started = true

		fields := logger.Fields(logger.FieldComponent, name)
		if d, ok := e.component.(Describable); ok {
			desc := d.Describe()
			fields["type"] = desc.Type
			fields["details"] = desc.Details
		}
		r.log.Debug("component started", fields)
	}
	return nil
}

// StopAll stops started components in reverse order and joins their errors.
func (r *Registry) StopAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		if !e.started {
			continue
		}
		name := e.component.Name()
		stopCtx, cancel := context.WithTimeout(ctx, StopTimeout)
		if err := e.component.Stop(stopCtx); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop %s: %w", name, err))
			r.log.Error("component stop failed", logger.Fields(logger.FieldComponent, name, logger.FieldError, err.Error()))
		}
		cancel()
		e.started = false
	}
	return errors.Join(errs...)
}

// HealthAll returns the health of every registered component.
func (r *Registry) HealthAll(ctx context.Context) []Health {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Health, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.component.Health(ctx))
	}
	return out
}

// Get returns the component registered under name, or nil.
func (r *Registry) Get(name string) Component {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if e, ok := r.lookup[name]; ok {
		return e.component
	}
	return nil
}
