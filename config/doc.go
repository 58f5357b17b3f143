// Package config loads service configuration.
//
// It uses Viper to read a YAML file, godotenv to load a .env file into the
// process environment, and binds prefixed environment variables on top.
//
// # Usage
//
//	var cfg AppConfig
//	err := config.LoadConfig("wxadapter", &cfg, config.WithConfigFile(path))
//
// Environment variables override file values using the service prefix and
// underscore-separated paths (e.g., WXADAPTER_PLATFORM_TIMEOUT).
package config
