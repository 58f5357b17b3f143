package logger

import "github.com/kbukum/wxadapter/validation"

// Config contains logging configuration.
type Config struct {
	ServiceName string `yaml:"service_name" mapstructure:"service_name" json:"service_name"`
	Level       string `yaml:"level" mapstructure:"level" json:"level" validate:"oneof=trace debug info warn error fatal disabled"`
	Format      string `yaml:"format" mapstructure:"format" json:"format" validate:"oneof=json console pretty"`
	Output      string `yaml:"output" mapstructure:"output" json:"output" validate:"omitempty,oneof=stdout stderr"`
	NoColor     bool   `yaml:"no_color" mapstructure:"no_color" json:"no_color"`
	Timestamp   bool   `yaml:"timestamp" mapstructure:"timestamp" json:"timestamp"`
	Caller      bool   `yaml:"caller" mapstructure:"caller" json:"caller"`
}

// ApplyDefaults fills level info, console format and stderr output.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "console"
	}
	if c.Output == "" {
		c.Output = "stderr"
	}
	c.Timestamp = true
}

func (c *Config) Validate() error {
	return validation.Validate(c)
}
