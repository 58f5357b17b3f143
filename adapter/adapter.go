package adapter

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/wxadapter/errors"
	"github.com/kbukum/wxadapter/logger"
	"github.com/kbukum/wxadapter/observability"
	"github.com/kbukum/wxadapter/platform"
)

const defaultServiceName = "wxadapter"

// Adapter runs calls against a Platform. It holds no per-call state and is
// safe for concurrent use.
type Adapter struct {
	platform    platform.Platform
	log         *logger.Logger
	metrics     *observability.Metrics
	serviceName string
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the logger. Defaults to the global logger.
func WithLogger(l *logger.Logger) Option {
	return func(a *Adapter) {
		if l != nil {
			a.log = l.WithComponent("adapter")
		}
	}
}

// WithMetrics records call metrics on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(a *Adapter) {
		a.metrics = m
	}
}

// WithServiceName sets the service name reported on spans.
func WithServiceName(name string) Option {
	return func(a *Adapter) {
		if name != "" {
			a.serviceName = name
		}
	}
}

// New creates an Adapter over p.
func New(p platform.Platform, opts ...Option) *Adapter {
	a := &Adapter{
		platform:    p,
		log:         logger.WithComponent("adapter"),
		serviceName: defaultServiceName,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Adapt runs cfg and blocks until the call settles. Canceling ctx cancels
// the call.
func (a *Adapter) Adapt(ctx context.Context, cfg *Config) (*Response, error) {
	return a.Dispatch(ctx, cfg).Result()
}

// Dispatch starts cfg on the platform and returns its Future. The call
// settles on the first of platform success, platform failure, or
// cancellation through cfg.CancelToken or ctx.
func (a *Adapter) Dispatch(ctx context.Context, cfg *Config) *Future {
	f := newFuture()
	if err := validateConfig(cfg); err != nil {
		a.log.Debug("rejecting call", logger.ErrorFields("dispatch", err))
		f.reject(err)
		return f
	}

	kind := cfg.Kind()
	url := BuildURL(cfg)
	c := &call{
		id:      uuid.NewString(),
		kind:    kind,
		cfg:     cfg,
		future:  f,
		metrics: a.metrics,
	}
	c.ctx, c.op = observability.StartOperation(ctx, a.serviceName, kind.String(), c.id, a.metrics,
		attribute.String(observability.AttrURL, url),
	)
	c.log = a.log.WithContext(c.ctx).WithFields(logger.Fields(
		logger.FieldCallID, c.id,
		logger.FieldKind, kind.String(),
	))

	if reason := canceledBeforeSend(ctx, cfg); reason != nil {
		c.rejectEarly(outcomeCanceled, reason)
		return f
	}

	opts := c.options(url)
	beforeSend(kind, opts, cfg)
	c.log.Debug("dispatching call", logger.Fields(
		logger.FieldURL, url,
		logger.FieldMethod, opts.Method,
	))

	h := primitive(a.platform, kind)(opts)
	if h == nil {
		c.rejectEarly(outcomeFailed, createError("platform returned no request handle",
			cfg, errors.ErrCodeUnavailable, nil, nil))
		return f
	}
	c.attach(h)
	c.watch(ctx)
	return f
}

func canceledBeforeSend(ctx context.Context, cfg *Config) error {
	if cfg.CancelToken != nil {
		if reason := cfg.CancelToken.Reason(); reason != nil {
			return reason
		}
	}
	return ctx.Err()
}
