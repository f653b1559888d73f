package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load,
// e.g. VOCAB_DATABASE_URL for database.url.
const EnvPrefix = "VOCAB"

// defaults are applied before any other configuration source.
var defaults = map[string]any{
	"server.port":                 8080,
	"server.log_level":            "info",
	"auth.token_lifetime_minutes": 60,
	"llm.model_name":              "gemini-2.0-flash",
	"llm.generation_max_tokens":   2048,
	"llm.grading_max_tokens":      512,
	"llm.temperature":             0.7,
	"llm.max_retries":             3,
	"llm.retry_delay_seconds":     2,
	"llm.request_timeout_seconds": 60,
	"llm.requests_per_minute":     60,
	"quiz.default_question_count": 5,
	"quiz.max_question_count":     20,
	"quiz.persist_retries":        1,
}

// requiredKeys have no default and must come from the file or environment.
var requiredKeys = []string{
	"database.url",
	"auth.jwt_secret",
	"llm.gemini_api_key",
}

// Load reads configuration from defaults, an optional config.yaml in the
// working directory and environment variables, and validates the result.
func Load() (*Config, error) {
	return LoadFrom(viper.New(), ".")
}

// LoadFrom is Load using v and searching configDir for config.yaml.
func LoadFrom(v *viper.Viper, configDir string) (*Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range requiredKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("error binding environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
