package translation

import (
	"context"
	"errors"
	"strings"
	"time"

	"codeberg.org/snonux/lingosheet/internal/llm"
)

// DefaultCallTimeout bounds a single outbound translation call
const DefaultCallTimeout = 30 * time.Second

// ErrEmptyTranslation is returned when the model answered with no text
var ErrEmptyTranslation = errors.New("empty translation returned")

// Request is a single text to translate into a target language
type Request struct {
	Text           string
	TargetLanguage string
}

// Translator sends translation requests to a completion provider
type Translator struct {
	provider    llm.Provider
	prompts     *Prompts
	callTimeout time.Duration
}

// NewTranslator creates a new translator instance. A nil prompts value
// selects the built-in prompts; a non-positive timeout selects DefaultCallTimeout.
func NewTranslator(provider llm.Provider, prompts *Prompts, callTimeout time.Duration) *Translator {
	if prompts == nil {
		prompts = DefaultPrompts()
	}
	if callTimeout <= 0 {
		callTimeout = DefaultCallTimeout
	}
	return &Translator{
		provider:    provider,
		prompts:     prompts,
		callTimeout: callTimeout,
	}
}

// Ready reports whether the underlying provider is configured
func (t *Translator) Ready() error {
	return t.provider.IsAvailable()
}

// ProviderName returns the name of the underlying provider
func (t *Translator) ProviderName() string {
	return t.provider.Name()
}

// Translate translates a spreadsheet cell with the translate-only prompt.
// An empty completion is reported as ErrEmptyTranslation.
func (t *Translator) Translate(ctx context.Context, req Request) (string, error) {
	content, err := t.complete(ctx, t.prompts.BatchPrompt(req.TargetLanguage), req.Text)
	if err != nil {
		return "", err
	}

	translation := strings.TrimSpace(content)
	if translation == "" {
		return "", ErrEmptyTranslation
	}
	return translation, nil
}

// TranslateText is Translate for callers that hold text and language separately
func (t *Translator) TranslateText(ctx context.Context, text, targetLanguage string) (string, error) {
	return t.Translate(ctx, Request{Text: text, TargetLanguage: targetLanguage})
}

// Localize translates a chat message with the localization-expert prompt.
// The completion text is returned untrimmed.
func (t *Translator) Localize(ctx context.Context, message, targetLanguage string) (string, error) {
	return t.complete(ctx, t.prompts.ChatPrompt(targetLanguage), message)
}

func (t *Translator) complete(ctx context.Context, systemPrompt, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.callTimeout)
	defer cancel()

	return t.provider.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt},
		{Role: llm.RoleUser, Content: text},
	})
}
