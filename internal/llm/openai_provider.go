package llm

import (
	"context"
	"errors"
	"net/http"

	"github.com/sashabaranov/go-openai"
)

// Defaults for the OpenAI-compatible endpoint
const (
	DefaultOpenAIBaseURL = "https://cloud.infini-ai.com/maas/v1"
	DefaultOpenAIModel   = "deepseek-v3"
)

// OpenAIProvider implements Provider for OpenAI-compatible chat completion APIs
type OpenAIProvider struct {
	client *openai.Client
	config *Config
}

// NewOpenAIProvider creates a new OpenAI-compatible provider
func NewOpenAIProvider(config *Config) *OpenAIProvider {
	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	if config.Timeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: config.Timeout}
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}
}

// Complete sends a chat completion request and returns the first choice's content
func (p *OpenAIProvider) Complete(ctx context.Context, messages []Message) (string, error) {
	if err := p.IsAvailable(); err != nil {
		return "", err
	}

	model := p.config.Model
	if model == "" {
		model = DefaultOpenAIModel
	}

	req := openai.ChatCompletionRequest{
		Model:    model,
		Messages: make([]openai.ChatCompletionMessage, 0, len(messages)),
	}
	for _, msg := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", p.wrapError(err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	return resp.Choices[0].Message.Content, nil
}

// wrapError converts go-openai errors into an UpstreamError carrying the HTTP status
func (p *OpenAIProvider) wrapError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	upstream := &UpstreamError{Provider: p.Name(), Err: err}

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		upstream.StatusCode = apiErr.HTTPStatusCode
		upstream.Body = apiErr.Message
	case errors.As(err, &reqErr):
		upstream.StatusCode = reqErr.HTTPStatusCode
		upstream.Body = string(reqErr.Body)
		if upstream.Body == "" && reqErr.Err != nil {
			upstream.Body = reqErr.Err.Error()
		}
	}
	return upstream
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return ProviderOpenAI
}

// IsAvailable checks if the provider has a credential
func (p *OpenAIProvider) IsAvailable() error {
	if p.config.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}
