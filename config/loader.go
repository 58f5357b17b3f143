package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/wxadapter/logger"
)

// Option customizes LoadConfig.
type Option func(*loader)

// WithConfigFile reads path instead of searching for config.yml.
func WithConfigFile(path string) Option {
	return func(l *loader) { l.configFile = path }
}

// WithEnvFile loads path instead of searching for .env.
func WithEnvFile(path string) Option {
	return func(l *loader) { l.envFile = path }
}

// WithEnvPrefix replaces the SERVICE_ prefix derived from the service name.
func WithEnvPrefix(prefix string) Option {
	return func(l *loader) { l.prefix = prefix }
}

type loader struct {
	service    string
	configFile string
	envFile    string
	prefix     string
	// exists reports whether a candidate file is present.
	exists func(path string) bool
	log    *logger.Logger
}

// LoadConfig fills cfg from, in increasing priority, a YAML file, a .env
// file and SERVICE_* environment variables (WXADAPTER_PLATFORM_TIMEOUT sets
// platform.timeout). Missing files are not an error.
func LoadConfig(service string, cfg any, opts ...Option) error {
	l := &loader{
		service: service,
		prefix:  envPrefix(service),
		exists:  fileExists,
		log:     logger.WithComponent("config"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l.load(cfg)
}

func (l *loader) load(cfg any) error {
	v := viper.New()

	if path := l.pick(l.configFile, l.configCandidates()); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			l.log.Warn("config file ignored", logger.ErrorFields("read_config", err))
		} else {
			l.log.Debug("config file loaded", logger.Fields("file", path))
		}
	}

	if path := l.pick(l.envFile, l.envCandidates()); path != "" {
		if err := godotenv.Load(path); err != nil {
			l.log.Warn(".env file ignored", logger.ErrorFields("load_env", err))
		}
	}

	for key, value := range prefixedEnv(l.prefix, os.Environ()) {
		for _, k := range keyVariants(key) {
			v.Set(k, value)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("config %s: %w", l.service, err)
	}
	return nil
}

// pick returns explicit when it exists, else the first existing candidate.
func (l *loader) pick(explicit string, candidates []string) string {
	if explicit != "" {
		candidates = []string{explicit}
	}
	for _, c := range candidates {
		if l.exists(c) {
			return c
		}
	}
	return ""
}

func (l *loader) configCandidates() []string {
	paths := []string{
		filepath.Join("cmd", l.service, "config.yml"),
		"config.yml",
		filepath.Join("config", "config.yml"),
	}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, l.service, "config.yml"))
	}
	return paths
}

func (l *loader) envCandidates() []string {
	return []string{
		filepath.Join("cmd", l.service, ".env"),
		".env." + l.service,
		".env",
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func envPrefix(service string) string {
	return strings.ToUpper(strings.ReplaceAll(service, "-", "_")) + "_"
}

// prefixedEnv returns the variables starting with prefix, keyed by the
// remainder.
func prefixedEnv(prefix string, environ []string) map[string]string {
	out := map[string]string{}
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		if rest, found := strings.CutPrefix(key, prefix); found && rest != "" {
			out[rest] = value
		}
	}
	return out
}

// keyVariants maps an env key onto the viper keys it may address, since an
// underscore can separate sections or words:
//
//	PLATFORM_MAX_CONCURRENT -> platform_max_concurrent, platform.max.concurrent,
//	                           platform.max_concurrent
func keyVariants(envKey string) []string {
	key := strings.ToLower(envKey)
	parts := strings.Split(key, "_")
	out := []string{key}
	if len(parts) == 1 {
		return out
	}
	seen := map[string]bool{key: true}
	add := func(k string) {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	add(strings.Join(parts, "."))
	for i := 1; i < len(parts); i++ {
		add(strings.Join(parts[:i], ".") + "." + strings.Join(parts[i:], "_"))
	}
	return out
}
