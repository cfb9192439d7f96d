package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured for the Gemini provider
const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiProvider implements Provider for the Google Gemini API
type GeminiProvider struct {
	client *genai.Client
	config *Config
}

// NewGeminiProvider creates a new Gemini provider. Without an API key the
// client is not constructed and every call returns ErrMissingAPIKey.
func NewGeminiProvider(ctx context.Context, config *Config) (*GeminiProvider, error) {
	provider := &GeminiProvider{config: config}
	if config.APIKey == "" {
		return provider, nil
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" && config.BaseURL != DefaultOpenAIBaseURL {
		clientConfig.HTTPOptions.BaseURL = config.BaseURL
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	provider.client = client
	return provider, nil
}

// Complete sends the conversation to Gemini. System messages become the
// system instruction; assistant turns are sent with the model role.
func (p *GeminiProvider) Complete(ctx context.Context, messages []Message) (string, error) {
	if err := p.IsAvailable(); err != nil {
		return "", err
	}

	model := p.config.Model
	if model == "" || model == DefaultOpenAIModel {
		model = DefaultGeminiModel
	}

	var system []string
	var contents []*genai.Content
	for _, msg := range messages {
		switch msg.Role {
		case RoleSystem:
			system = append(system, msg.Content)
		case RoleAssistant:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleUser))
		}
	}

	genConfig := &genai.GenerateContentConfig{}
	if len(system) > 0 {
		genConfig.SystemInstruction = genai.NewContentFromText(strings.Join(system, "\n\n"), genai.RoleUser)
	}

	resp, err := p.client.Models.GenerateContent(ctx, model, contents, genConfig)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		upstream := &UpstreamError{Provider: p.Name(), Err: err}
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			upstream.StatusCode = apiErr.Code
			upstream.Body = apiErr.Message
		}
		return "", upstream
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrEmptyResponse
	}
	return resp.Text(), nil
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return ProviderGemini
}

// IsAvailable checks if the provider has a credential
func (p *GeminiProvider) IsAvailable() error {
	if p.config.APIKey == "" || p.client == nil {
		return ErrMissingAPIKey
	}
	return nil
}
