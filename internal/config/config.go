package config

// Config holds all application configuration. Values are populated from
// defaults, an optional config.yaml and VOCAB_-prefixed environment variables,
// then validated with go-playground/validator struct tags.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm" validate:"required"`
	Quiz     QuizConfig     `mapstructure:"quiz" validate:"required"`
}

// ServerConfig defines HTTP server settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig defines database connection settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig defines the access-token settings shared with the identity
// provider.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// LLMConfig defines settings for the generative-language service.
type LLMConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required"`
	ModelName    string `mapstructure:"model_name" validate:"required"`

	// Output budgets for the two kinds of calls.
	GenerationMaxTokens int `mapstructure:"generation_max_tokens" validate:"required,gt=0"`
	GradingMaxTokens    int `mapstructure:"grading_max_tokens" validate:"required,gt=0"`

	Temperature float32 `mapstructure:"temperature" validate:"gte=0,lte=2"`

	// Retry policy for transient upstream failures.
	MaxRetries        int `mapstructure:"max_retries" validate:"gte=0,lte=10"`
	RetryDelaySeconds int `mapstructure:"retry_delay_seconds" validate:"gte=0,lte=60"`

	RequestTimeoutSeconds int `mapstructure:"request_timeout_seconds" validate:"required,gt=0"`

	// RequestsPerMinute caps outgoing calls; zero disables the limiter.
	RequestsPerMinute int `mapstructure:"requests_per_minute" validate:"gte=0"`
}

// QuizConfig defines quiz session settings.
type QuizConfig struct {
	DefaultQuestionCount int `mapstructure:"default_question_count" validate:"required,gt=0,ltefield=MaxQuestionCount"`
	MaxQuestionCount     int `mapstructure:"max_question_count" validate:"required,gt=0"`

	// PersistRetries is the number of extra attempts for each persistence write.
	PersistRetries int `mapstructure:"persist_retries" validate:"gte=0,lte=5"`
}
