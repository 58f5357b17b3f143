package component

import "context"

// HealthStatus represents the health state of a component.
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusUnhealthy HealthStatus = "unhealthy"
	StatusDegraded  HealthStatus = "degraded"
)

// Health holds health information for a component.
type Health struct {
	Name    string       `json:"name"`
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// Component is a service with a start/stop lifecycle.
type Component interface {
	// Name returns the unique registration name.
	Name() string
	Start(ctx context.Context) error
	// Stop releases resources. It must be safe to call after a failed Start.
	Stop(ctx context.Context) error
	Health(ctx context.Context) Health
}

// Description is a one-line summary a component reports about itself.
type Description struct {
	// Name is the display name. Empty means the component's Name().
	Name string `json:"name"`
	// Type categorizes the component, e.g. "http-platform".
	Type string `json:"type"`
	// Details is a short configuration summary.
	Details string `json:"details,omitempty"`
}

// Describable is optionally implemented by components to appear in
// Registry.Describe.
type Describable interface {
	Describe() Description
}
