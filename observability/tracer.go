package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"github.com/kbukum/wxadapter/logger"
)

const (
	instrumentationName = "github.com/kbukum/wxadapter"
	defaultEndpoint     = "localhost:4318"
)

// Resource identifies the process in exported telemetry.
type Resource struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
}

func (r Resource) build() (*resource.Resource, error) {
	// Schemaless so the merge never conflicts with the SDK default schema.
	return resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			semconv.ServiceName(r.ServiceName),
			semconv.ServiceVersion(r.ServiceVersion),
			attribute.String("environment", r.Environment),
		),
	)
}

// ExporterConfig is the OTLP/HTTP settings shared by traces and metrics.
type ExporterConfig struct {
	// Enabled turns export on. Init* is only called when set.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// Endpoint is the collector host:port. Defaults to localhost:4318.
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
	// TLS exports over https instead of plain http.
	TLS bool `yaml:"tls" mapstructure:"tls"`
}

// TracerConfig configures span export.
type TracerConfig struct {
	ExporterConfig `yaml:",inline" mapstructure:",squash"`
	// SampleRate is the sampled fraction of traces, 0 to 1. Zero means 1.
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
}

func (c *TracerConfig) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = defaultEndpoint
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1
	}
}

// InitTracer installs a global tracer provider exporting to cfg.Endpoint.
// The caller shuts it down on exit.
func InitTracer(ctx context.Context, res Resource, cfg TracerConfig) (*sdktrace.TracerProvider, error) {
	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
	if !cfg.TLS {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("trace exporter: %w", err)
	}
	r, err := res.build()
	if err != nil {
		return nil, fmt.Errorf("trace resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(r),
		sdktrace.WithSampler(sdktrace.ParentBased(samplerFor(cfg.SampleRate))),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.Info("tracing enabled", logger.Fields(
		"endpoint", cfg.Endpoint,
		"sample_rate", cfg.SampleRate,
	))
	return tp, nil
}

func samplerFor(rate float64) sdktrace.Sampler {
	switch {
	case rate >= 1:
		return sdktrace.AlwaysSample()
	case rate <= 0:
		return sdktrace.NeverSample()
	}
	return sdktrace.TraceIDRatioBased(rate)
}
