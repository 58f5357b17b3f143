package config

import (
	"github.com/kbukum/wxadapter/logger"
	"github.com/kbukum/wxadapter/validation"
)

// Environments accepted by ServiceConfig.
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// ServiceConfig holds the fields shared by every binary. Embed it with
// mapstructure squash:
//
//	type appConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Platform httpclient.Config `yaml:"platform" mapstructure:"platform"`
//	}
type ServiceConfig struct {
	Name        string        `yaml:"name" mapstructure:"name" json:"name" validate:"required"`
	Environment string        `yaml:"environment" mapstructure:"environment" json:"environment" validate:"oneof=development staging production"`
	Version     string        `yaml:"version" mapstructure:"version" json:"version"`
	Debug       bool          `yaml:"debug" mapstructure:"debug" json:"debug"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging" json:"logging"`
}

// ApplyDefaults defaults to development, where debug logging is on, and
// tags log output with the service name. Embedding configs call it before
// their own defaults.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = EnvDevelopment
	}
	if c.Environment == EnvDevelopment {
		c.Debug = true
	}
	if c.Debug && c.Logging.Level == "" {
		c.Logging.Level = "debug"
	}
	if c.Logging.ServiceName == "" {
		c.Logging.ServiceName = c.Name
	}
	c.Logging.ApplyDefaults()
}

// Validate checks the service fields and the nested logging config in
// one pass.
func (c *ServiceConfig) Validate() error {
	return validation.Validate(c)
}
