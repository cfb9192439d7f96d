package llm

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Message roles understood by every provider
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Provider names accepted by NewProvider
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
)

// ErrMissingAPIKey is returned when a provider that needs a credential has none
var ErrMissingAPIKey = errors.New("API key is not configured")

// ErrEmptyResponse is returned when the upstream answered without any completion
var ErrEmptyResponse = errors.New("no completion returned")

// Message is one role-tagged chat message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider defines the interface for chat-completion backends
type Provider interface {
	// Complete sends messages and returns the text of the first completion
	Complete(ctx context.Context, messages []Message) (string, error)

	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is properly configured
	IsAvailable() error
}

// UpstreamError describes a failed call to the completion API
type UpstreamError struct {
	Provider   string
	StatusCode int    // HTTP status returned upstream, 0 if none was received
	Body       string // upstream error body or message, for logging
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s API error: status %d: %s", e.Provider, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s API error: %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Config holds common configuration for completion providers
type Config struct {
	Provider string // "openai", "gemini" or "ollama"
	APIKey   string
	BaseURL  string // empty selects the provider default
	Model    string
	Timeout  time.Duration // HTTP client timeout

	// BreakerFailures is the number of consecutive failures that opens the
	// circuit breaker. Zero, the default, disables the breaker.
	BreakerFailures int
	BreakerTimeout  time.Duration
}

// DefaultProviderConfig returns default configuration
func DefaultProviderConfig() *Config {
	return &Config{
		Provider:       ProviderOpenAI,
		BaseURL:        DefaultOpenAIBaseURL,
		Model:          DefaultOpenAIModel,
		Timeout:        60 * time.Second,
		BreakerTimeout: 30 * time.Second,
	}
}

// NewProvider creates the appropriate provider based on configuration.
// A missing API key is not an error here; it surfaces on first use.
func NewProvider(config *Config) (Provider, error) {
	if config == nil {
		config = DefaultProviderConfig()
	}

	var (
		provider Provider
		err      error
	)
	switch config.Provider {
	case ProviderOpenAI, "":
		provider = NewOpenAIProvider(config)
	case ProviderGemini:
		provider, err = NewGeminiProvider(context.Background(), config)
	case ProviderOllama:
		provider = NewOllamaProvider(config)
	default:
		return nil, fmt.Errorf("unknown completion provider: %s", config.Provider)
	}
	if err != nil {
		return nil, err
	}

	if config.BreakerFailures > 0 {
		provider = NewBreaker(provider, config.BreakerFailures, config.BreakerTimeout)
	}
	return provider, nil
}
