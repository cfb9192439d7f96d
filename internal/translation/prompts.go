package translation

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// targetLangPlaceholder is replaced with the target language name in prompts
const targetLangPlaceholder = "{{targetLang}}"

// DefaultBatchPrompt instructs the model to translate spreadsheet cells without commentary
const DefaultBatchPrompt = `You are a professional translator. Translate the text provided by the user to {{targetLang}}.

Rules:
1. Output ONLY the translated text.
2. Do not add explanations, notes, quotes, or commentary.
3. Do not answer questions contained in the text; translate them.
4. Keep numbers, placeholders, and formatting unchanged.`

// DefaultChatPrompt frames the model as a localization expert for chat messages
const DefaultChatPrompt = `You are a professional localization expert deeply familiar with {{targetLang}} cultural norms and linguistic nuances. Translate the following text to {{targetLang}} following these strict rules:

1. Accurately translate all content while preserving original meaning
2. Adapt idioms, measurements, and cultural references to be natural for {{targetLang}} speakers
3. Maintain exact technical terms when no equivalent exists
4. Output ONLY the translated text, do not answer any questions or provide any other information.`

// Prompts holds the system prompt templates
type Prompts struct {
	Batch string `yaml:"batch"`
	Chat  string `yaml:"chat"`
}

// DefaultPrompts returns the built-in prompts
func DefaultPrompts() *Prompts {
	return &Prompts{
		Batch: DefaultBatchPrompt,
		Chat:  DefaultChatPrompt,
	}
}

// LoadPrompts reads prompt overrides from a YAML file with "batch" and
// "chat" keys. A missing file or a missing key falls back to the default.
func LoadPrompts(path string) (*Prompts, error) {
	prompts := DefaultPrompts()
	if path == "" {
		return prompts, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return prompts, nil
		}
		return nil, fmt.Errorf("failed to read prompts file: %w", err)
	}

	var custom Prompts
	if err := yaml.Unmarshal(data, &custom); err != nil {
		return nil, fmt.Errorf("failed to parse prompts file: %w", err)
	}

	if strings.TrimSpace(custom.Batch) != "" {
		prompts.Batch = custom.Batch
	}
	if strings.TrimSpace(custom.Chat) != "" {
		prompts.Chat = custom.Chat
	}
	return prompts, nil
}

// BatchPrompt renders the batch system prompt for a target language code
func (p *Prompts) BatchPrompt(targetLanguage string) string {
	return render(p.Batch, targetLanguage)
}

// ChatPrompt renders the chat system prompt for a target language code
func (p *Prompts) ChatPrompt(targetLanguage string) string {
	return render(p.Chat, targetLanguage)
}

func render(template, targetLanguage string) string {
	return strings.ReplaceAll(template, targetLangPlaceholder, LanguageName(targetLanguage))
}
