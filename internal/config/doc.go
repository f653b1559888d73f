// Package config loads and validates application configuration.
//
// Configuration comes from built-in defaults, an optional config.yaml and
// environment variables prefixed with VOCAB_ (nested keys use underscores, so
// llm.gemini_api_key is read from VOCAB_LLM_GEMINI_API_KEY). The Gemini API key,
// database URL and JWT secret have no defaults; Load fails clearly when any of
// them is missing.
package config
