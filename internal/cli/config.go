package cli

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"codeberg.org/snonux/lingosheet/internal/batch"
	"codeberg.org/snonux/lingosheet/internal/llm"
	"codeberg.org/snonux/lingosheet/internal/server"
)

// LLMConfig builds the provider configuration from viper
func LLMConfig() *llm.Config {
	config := llm.DefaultProviderConfig()
	config.APIKey = GetAPIKey()

	if provider := viper.GetString("llm.provider"); provider != "" {
		config.Provider = provider
	}
	if model := viper.GetString("llm.model"); model != "" {
		config.Model = model
	}
	if baseURL := viper.GetString("llm.base_url"); baseURL != "" {
		config.BaseURL = baseURL
	}
	if viper.IsSet("llm.timeout") {
		config.Timeout = viper.GetDuration("llm.timeout")
	}
	if viper.IsSet("llm.breaker_failures") {
		config.BreakerFailures = viper.GetInt("llm.breaker_failures")
	}
	return config
}

// BatchConfig builds and validates the batch limits from viper
func BatchConfig() (*batch.Config, error) {
	config := batch.DefaultConfig()

	if viper.IsSet("batch.max_rows") {
		config.MaxRows = viper.GetInt("batch.max_rows")
	}
	if viper.IsSet("batch.max_chars") {
		config.MaxChars = viper.GetInt("batch.max_chars")
	}
	if overflow := viper.GetString("batch.overflow"); overflow != "" {
		config.Overflow = batch.OverflowPolicy(overflow)
	}
	if viper.IsSet("batch.concurrency") {
		config.Concurrency = viper.GetInt("batch.concurrency")
	}
	if viper.IsSet("batch.timeout") {
		config.BatchTimeout = viper.GetDuration("batch.timeout")
	}
	if viper.IsSet("batch.row_timeout") {
		config.RowTimeout = viper.GetDuration("batch.row_timeout")
	}
	if viper.IsSet("batch.delay") {
		config.Delay = viper.GetDuration("batch.delay")
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid batch configuration: %w", err)
	}
	return config, nil
}

// ServerConfig builds the HTTP server configuration from viper
func ServerConfig(language string) *server.Config {
	config := server.DefaultConfig()

	if addr := viper.GetString("server.addr"); addr != "" {
		config.Addr = addr
	}
	if viper.IsSet("server.max_upload") {
		config.MaxUploadBytes = viper.GetInt64("server.max_upload")
	}
	if viper.IsSet("server.shutdown_timeout") {
		config.ShutdownTimeout = viper.GetDuration("server.shutdown_timeout")
	}
	if language != "" {
		config.DefaultLanguage = language
	}
	return config
}

// HistoryPath returns the configured history database path; empty disables history
func HistoryPath() string {
	return viper.GetString("history.db")
}

// PromptsPath returns the configured prompt override file
func PromptsPath() string {
	return viper.GetString("prompts.file")
}

// RowTimeout exposes the configured per-row deadline for the translator
func RowTimeout() time.Duration {
	if viper.IsSet("batch.row_timeout") {
		return viper.GetDuration("batch.row_timeout")
	}
	return batch.DefaultConfig().RowTimeout
}
