package component

import "context"

// HealthStatus is the health state of a component.
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusUnhealthy HealthStatus = "unhealthy"
	StatusDegraded  HealthStatus = "degraded"
)

// Health is a component's health report.
type Health struct {
	Name    string       `json:"name"`
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// Component is a lifecycle-managed piece of a process, such as a fetch
// client bound to a configured backend.
type Component interface {
	// Name returns the unique registration name.
	Name() string
	// Start initializes the component.
	Start(ctx context.Context) error
	// Stop releases the component's resources.
	Stop(ctx context.Context) error
	// Health reports the current health.
	Health(ctx context.Context) Health
}

// Description is a one-line summary a component reports about itself.
type Description struct {
	// Name is the display name. Empty means Component.Name().
	Name string
	// Type categorizes the component, e.g. "http-client".
	Type string
	// Details is a short human readable summary such as the base URL.
	Details string
}

// Describable is optionally implemented by components that can describe
// their configuration.
type Describable interface {
	Describe() Description
}
