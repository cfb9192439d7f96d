package models

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/lingosheet/internal/llm"
)

// chatHints mark model IDs that can serve chat completions
var chatHints = []string{"chat", "gpt", "deepseek", "qwen", "llama", "glm", "mistral", "claude", "gemini"}

// nonChatHints win over chatHints
var nonChatHints = []string{"embed", "tts", "whisper", "dall-e", "rerank", "audio", "image"}

// Lister handles listing available models
type Lister struct {
	apiKey  string
	baseURL string
	client  *openai.Client
}

// NewLister creates a new model lister for an OpenAI-compatible endpoint.
// An empty baseURL selects llm.DefaultOpenAIBaseURL.
func NewLister(apiKey, baseURL string) *Lister {
	if baseURL == "" {
		baseURL = llm.DefaultOpenAIBaseURL
	}
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL
	return &Lister{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  openai.NewClientWithConfig(config),
	}
}

// Categorize splits model IDs into chat models and others, both sorted
func Categorize(ids []string) (chat, other []string) {
	for _, id := range ids {
		if isChatModel(id) {
			chat = append(chat, id)
		} else {
			other = append(other, id)
		}
	}
	sort.Strings(chat)
	sort.Strings(other)
	return chat, other
}

func isChatModel(id string) bool {
	lower := strings.ToLower(id)
	for _, hint := range nonChatHints {
		if strings.Contains(lower, hint) {
			return false
		}
	}
	for _, hint := range chatHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

// ListAvailableModels writes the endpoint's models to w, chat models first
func (l *Lister) ListAvailableModels(ctx context.Context, w io.Writer) error {
	if l.apiKey == "" {
		return fmt.Errorf("%w: set INFINI_API_KEY or llm.api_key in .lingosheet.yaml", llm.ErrMissingAPIKey)
	}

	models, err := l.client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	ids := make([]string, 0, len(models.Models))
	for _, model := range models.Models {
		ids = append(ids, model.ID)
	}
	chat, other := Categorize(ids)

	fmt.Fprintf(w, "Available models at %s:\n", l.baseURL)
	fmt.Fprintln(w, "\nChat/Translation Models:")
	if len(chat) == 0 {
		fmt.Fprintln(w, "  No chat models found")
	}
	for _, id := range chat {
		fmt.Fprintf(w, "  %s\n", id)
	}

	if len(other) > 0 {
		fmt.Fprintln(w, "\nOther Models:")
		for _, id := range other {
			fmt.Fprintf(w, "  %s\n", id)
		}
	}

	return nil
}
