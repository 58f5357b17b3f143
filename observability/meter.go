package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/wxadapter/logger"
)

// MeterConfig configures metric export.
type MeterConfig struct {
	ExporterConfig `yaml:",inline" mapstructure:",squash"`
	// Interval between exports. Defaults to 15s.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

func (c *MeterConfig) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = defaultEndpoint
	}
	if c.Interval <= 0 {
		c.Interval = 15 * time.Second
	}
}

// InitMeter installs a global meter provider with a periodic OTLP reader.
// The caller shuts it down on exit.
func InitMeter(ctx context.Context, res Resource, cfg MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint)}
	if !cfg.TLS {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("metric exporter: %w", err)
	}
	r, err := res.build()
	if err != nil {
		return nil, fmt.Errorf("metric resource: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(cfg.Interval))),
		sdkmetric.WithResource(r),
	)
	otel.SetMeterProvider(mp)

	logger.Info("metrics enabled", logger.Fields(
		"endpoint", cfg.Endpoint,
		"interval", cfg.Interval.String(),
	))
	return mp, nil
}

// Metrics holds the call instruments. A nil *Metrics records nothing.
type Metrics struct {
	settled  metric.Int64Counter
	duration metric.Float64Histogram
	pending  metric.Int64UpDownCounter
	ignored  metric.Int64Counter
}

// NewMetrics registers the call instruments on meter, or on the global
// provider when meter is nil.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	if meter == nil {
		meter = otel.Meter(instrumentationName)
	}
	var (
		m   Metrics
		err error
	)
	if m.settled, err = meter.Int64Counter("adapter.call.total",
		metric.WithDescription("Settled calls by kind and outcome")); err != nil {
		return nil, fmt.Errorf("adapter.call.total: %w", err)
	}
	if m.duration, err = meter.Float64Histogram("adapter.call.duration",
		metric.WithDescription("Dispatch to settlement"), metric.WithUnit("s")); err != nil {
		return nil, fmt.Errorf("adapter.call.duration: %w", err)
	}
	if m.pending, err = meter.Int64UpDownCounter("adapter.call.active",
		metric.WithDescription("Calls awaiting settlement")); err != nil {
		return nil, fmt.Errorf("adapter.call.active: %w", err)
	}
	if m.ignored, err = meter.Int64Counter("adapter.callback.ignored",
		metric.WithDescription("Platform callbacks dropped after settlement")); err != nil {
		return nil, fmt.Errorf("adapter.callback.ignored: %w", err)
	}
	return &m, nil
}

func (m *Metrics) started(ctx context.Context) {
	if m != nil {
		m.pending.Add(ctx, 1)
	}
}

func (m *Metrics) ended(ctx context.Context, kind, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.pending.Add(ctx, -1)
	m.settled.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("outcome", outcome),
	))
	m.duration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attribute.String("kind", kind)))
}

// RecordIgnoredCallback counts a platform callback that arrived after the
// call settled.
func (m *Metrics) RecordIgnoredCallback(ctx context.Context, kind, callback string) {
	if m == nil {
		return
	}
	m.ignored.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("callback", callback),
	))
}
