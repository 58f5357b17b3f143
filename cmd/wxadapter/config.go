package main

import (
	"github.com/kbukum/wxadapter/config"
	"github.com/kbukum/wxadapter/httpclient"
	"github.com/kbukum/wxadapter/observability"
	"github.com/kbukum/wxadapter/version"
)

const serviceName = "wxadapter"

// appConfig is loaded from config.yml, .env and WXADAPTER_* variables.
type appConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Platform httpclient.Config          `yaml:"platform" mapstructure:"platform"`
	Tracing  observability.TracerConfig `yaml:"tracing" mapstructure:"tracing"`
	Metrics  observability.MeterConfig  `yaml:"metrics" mapstructure:"metrics"`
}

func (c *appConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	if c.Version == "" {
		c.Version = version.Version
	}
	c.ServiceConfig.ApplyDefaults()
	c.Platform.ApplyDefaults()
	c.Tracing.ApplyDefaults()
	c.Metrics.ApplyDefaults()
}

// resource identifies this process in exported telemetry.
func (c *appConfig) resource() observability.Resource {
	return observability.Resource{
		ServiceName:    c.Name,
		ServiceVersion: c.Version,
		Environment:    c.Environment,
	}
}

func (c *appConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	return c.Platform.Validate()
}

func loadConfig(file string) (*appConfig, error) {
	var opts []config.Option
	if file != "" {
		opts = append(opts, config.WithConfigFile(file))
	}

	cfg := &appConfig{}
	if err := config.LoadConfig(serviceName, cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
