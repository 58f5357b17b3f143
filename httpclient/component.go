package httpclient

import (
	"context"
	"fmt"

	"github.com/kbukum/wxadapter/component"
)

// Component wraps a Client with lifecycle management for use with a
// component.Registry.
type Component struct {
	client *Client
	config Config
	opts   []Option
}

// compile-time assertions
var _ component.Component = (*Component)(nil)
var _ component.Describable = (*Component)(nil)

// NewComponent creates a new HTTP platform component.
// The client is created lazily in Start().
func NewComponent(cfg Config, opts ...Option) *Component {
	return &Component{config: cfg, opts: opts}
}

// Name returns the component name.
func (c *Component) Name() string {
	name := c.config.Name
	if name == "" {
		name = defaultName
	}
	return name
}

// Start creates the client.
func (c *Component) Start(_ context.Context) error {
	client, err := New(c.config, c.opts...)
	if err != nil {
		return err
	}
	c.client = client
	c.config = client.config
	return nil
}

// Stop aborts in-flight transfers and waits for them to finish.
func (c *Component) Stop(ctx context.Context) error {
	if c.client != nil {
		return c.client.Close(ctx)
	}
	return nil
}

// Health is unhealthy before Start, after Stop, and while every transfer
// slot is taken.
func (c *Component) Health(ctx context.Context) component.Health {
	h := component.Health{Name: c.Name(), Status: component.StatusHealthy}
	switch {
	case c.client == nil:
		h.Status = component.StatusUnhealthy
		h.Message = "not started"
	case !c.client.IsAvailable(ctx):
		h.Status = component.StatusUnhealthy
		s := c.client.Slots()
		h.Message = fmt.Sprintf("%d/%d transfers in flight, %d waiting", s.InUse, s.Capacity, s.Waiting)
	}
	return h
}

// Describe returns component description for the startup summary.
func (c *Component) Describe() component.Description {
	return component.Description{
		Name:    c.Name(),
		Type:    "http-platform",
		Details: fmt.Sprintf("timeout=%s max_concurrent=%d", c.config.Timeout, c.config.MaxConcurrent),
	}
}

// Client returns the underlying client. Must be called after Start().
func (c *Component) Client() *Client {
	return c.client
}
