package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Defaults for a local Ollama server
const (
	DefaultOllamaBaseURL = "http://localhost:11434"
	DefaultOllamaModel   = "llama3.1"
)

// OllamaProvider implements Provider for a local Ollama server
type OllamaProvider struct {
	http   *resty.Client
	config *Config
}

// NewOllamaProvider creates a new Ollama provider
func NewOllamaProvider(config *Config) *OllamaProvider {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &OllamaProvider{
		http:   resty.New().SetTimeout(timeout),
		config: config,
	}
}

type ollamaChatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type ollamaChatResponse struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
}

// Complete posts the conversation to /api/chat without streaming
func (p *OllamaProvider) Complete(ctx context.Context, messages []Message) (string, error) {
	var resp ollamaChatResponse
	rr, err := p.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(ollamaChatRequest{Model: p.model(), Messages: messages, Stream: false}).
		SetResult(&resp).
		Post(p.baseURL() + "/api/chat")
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		return "", &UpstreamError{Provider: p.Name(), Err: err}
	}
	if rr.IsError() {
		return "", &UpstreamError{
			Provider:   p.Name(),
			StatusCode: rr.StatusCode(),
			Body:       rr.String(),
			Err:        fmt.Errorf("ollama chat: %s", rr.Status()),
		}
	}

	if resp.Message.Content == "" {
		return "", ErrEmptyResponse
	}
	return resp.Message.Content, nil
}

func (p *OllamaProvider) baseURL() string {
	base := p.config.BaseURL
	if base == "" || base == DefaultOpenAIBaseURL {
		base = DefaultOllamaBaseURL
	}
	return strings.TrimRight(base, "/")
}

func (p *OllamaProvider) model() string {
	if p.config.Model == "" || p.config.Model == DefaultOpenAIModel {
		return DefaultOllamaModel
	}
	return p.config.Model
}

// Name returns the provider name
func (p *OllamaProvider) Name() string {
	return ProviderOllama
}

// IsAvailable always succeeds; Ollama needs no credential
func (p *OllamaProvider) IsAvailable() error {
	return nil
}
