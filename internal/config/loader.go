// Package config provides configuration management for the AI gateway
// service.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	defaultConfigName = "config"
	defaultConfigType = "yaml"
	envPrefix         = "SM_GATEWAY"

	// EnvGeminiAPIKey overrides the Gemini credential from file
	// configuration. Environment takes priority so keys stay out of
	// checked-in yaml.
	EnvGeminiAPIKey = "SM_GEMINI_API_KEY"

	// EnvOpenAIAPIKey overrides the OpenAI credential.
	EnvOpenAIAPIKey = "SM_OPENAI_API_KEY"
)

// Load reads the configuration from environment variables and files.
// Priority order (highest to lowest):
// 1. SM_GEMINI_API_KEY / SM_OPENAI_API_KEY env vars for credentials
// 2. Environment variables (prefixed with SM_GATEWAY_)
// 3. config.yaml - fallback for local development
// 4. Default values
func Load(configPath string) (*Configuration, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName(defaultConfigName)
	v.SetConfigType(defaultConfigType)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/sm-ai-gateway")
		v.AddConfigPath("$HOME/.sm-ai-gateway")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found is fine; defaults plus env
			// cover a full setup.
		} else {
			return nil, &ConfigError{
				Op:  "read",
				Err: fmt.Errorf("failed to read config file: %w", err),
			}
		}
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &ConfigError{
			Op:  "unmarshal",
			Err: fmt.Errorf("failed to unmarshal config: %w", err),
		}
	}

	// Credentials from the environment win over file configuration.
	if key := os.Getenv(EnvGeminiAPIKey); key != "" {
		cfg.Providers.Gemini.APIKey = key
	}
	if key := os.Getenv(EnvOpenAIAPIKey); key != "" {
		cfg.Providers.OpenAI.APIKey = key
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout_seconds", 30)
	v.SetDefault("server.write_timeout_seconds", 60)
	v.SetDefault("server.shutdown_timeout_seconds", 15)

	// Gateway defaults
	v.SetDefault("gateway.adapter_timeout_seconds", 30)
	v.SetDefault("gateway.zero_cost_mode", false)
	v.SetDefault("gateway.cacheable_operations", []string{})

	// Provider defaults: custom first, then gemini, then openai.
	v.SetDefault("providers.custom.enabled", true)
	v.SetDefault("providers.custom.priority", 1)
	v.SetDefault("providers.gemini.enabled", true)
	v.SetDefault("providers.gemini.priority", 2)
	v.SetDefault("providers.openai.enabled", true)
	v.SetDefault("providers.openai.priority", 3)

	// Cache defaults
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl_seconds", 300)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}
