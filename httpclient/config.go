package httpclient

import (
	"fmt"
	"os"
	"time"

	"github.com/kbukum/wxadapter/version"
)

const (
	defaultName          = "http"
	defaultTimeout       = 60 * time.Second
	defaultMaxConcurrent = 10
	defaultMaxWait       = time.Minute
)

// Config configures the HTTP platform.
type Config struct {
	// Name identifies the client in logs and health reports. Defaults to "http".
	Name string `yaml:"name" mapstructure:"name"`

	// Timeout applies to calls whose options carry no timeout. Defaults to 60s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// MaxConcurrent caps in-flight transfers across all primitives. Defaults to 10.
	MaxConcurrent int `yaml:"max_concurrent" mapstructure:"max_concurrent"`

	// MaxWait is how long a transfer queues for a slot. Defaults to 1m;
	// negative rejects immediately when all slots are taken.
	MaxWait time.Duration `yaml:"max_wait" mapstructure:"max_wait"`

	// DownloadDir receives downloads that name no destination. Defaults
	// to the OS temp directory.
	DownloadDir string `yaml:"download_dir" mapstructure:"download_dir"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// UserAgent is sent unless the call sets its own. Defaults to "wxadapter/<version>".
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// CookieJar keeps cookies across calls.
	CookieJar bool `yaml:"cookie_jar" mapstructure:"cookie_jar"`

	// Auth adds credentials to every request. Nil sends none.
	Auth Authorizer `yaml:"-" mapstructure:"-"`

	// TLS configures TLS settings for the HTTP transport.
	TLS *TLSConfig `yaml:"tls" mapstructure:"tls"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = defaultName
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.MaxConcurrent <= 0 {
		c.MaxConcurrent = defaultMaxConcurrent
	}
	if c.MaxWait == 0 {
		c.MaxWait = defaultMaxWait
	}
	if c.DownloadDir == "" {
		c.DownloadDir = os.TempDir()
	}
	if c.UserAgent == "" {
		c.UserAgent = version.UserAgent("wxadapter")
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	if c.MaxConcurrent <= 0 {
		return fmt.Errorf("httpclient: max_concurrent must be positive")
	}
	if info, err := os.Stat(c.DownloadDir); err != nil || !info.IsDir() {
		return fmt.Errorf("httpclient: download_dir %q is not a directory", c.DownloadDir)
	}
	return c.TLS.Validate()
}
