package httpclient

import (
	"context"

	"github.com/kbukum/fetchkit/component"
)

// Component wraps a Client with lifecycle management. The client is
// built in Start from Settings and seeded with them as its defaults.
type Component struct {
	name     string
	settings Settings
	opts     []Option
	client   *Client
}

var _ component.Component = (*Component)(nil)
var _ component.Describable = (*Component)(nil)

// NewComponent creates a component. The client is created lazily in Start.
func NewComponent(name string, settings Settings, opts ...Option) *Component {
	if name == "" {
		name = "httpclient"
	}
	return &Component{name: name, settings: settings, opts: opts}
}

// Name returns the component name.
func (c *Component) Name() string {
	return c.name
}

// Start validates the settings and creates the client.
func (c *Component) Start(_ context.Context) error {
	c.settings.ApplyDefaults()
	if err := c.settings.Validate(); err != nil {
		return err
	}
	opts := append([]Option{
		WithName(c.name),
		WithTransportConfig(c.settings.TransportConfig()),
		WithDefaults(c.settings.ToConfig()),
	}, c.opts...)

	client, err := New(opts...)
	if err != nil {
		return err
	}
	c.client = client
	return nil
}

// Stop closes idle connections held by the client's transport.
func (c *Component) Stop(_ context.Context) error {
	if c.client == nil {
		return nil
	}
	if t, ok := c.client.transport.(interface{ CloseIdleConnections() }); ok {
		t.CloseIdleConnections()
	}
	return nil
}

// Health reports healthy once the client exists.
func (c *Component) Health(ctx context.Context) component.Health {
	h := component.Health{Name: c.name, Status: component.StatusHealthy}
	if !c.client.IsAvailable(ctx) {
		h.Status = component.StatusUnhealthy
		h.Message = "not started"
	}
	return h
}

// Describe summarizes the component.
func (c *Component) Describe() component.Description {
	return component.Description{
		Name:    c.name,
		Type:    "http-client",
		Details: c.settings.BaseURL,
	}
}

// Client returns the underlying client. Must be called after Start.
func (c *Component) Client() *Client {
	return c.client
}
