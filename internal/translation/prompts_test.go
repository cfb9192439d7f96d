package translation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultPrompts(t *testing.T) {
	prompts := DefaultPrompts()

	batch := prompts.BatchPrompt("de")
	if !strings.Contains(batch, "to German") {
		t.Errorf("Batch prompt does not name the target language: %s", batch)
	}
	if strings.Contains(batch, targetLangPlaceholder) {
		t.Error("Batch prompt still contains the placeholder")
	}

	chat := prompts.ChatPrompt("fr")
	for _, want := range []string{
		"localization expert",
		"French cultural norms",
		"preserving original meaning",
		"idioms, measurements, and cultural references",
		"technical terms",
		"Output ONLY the translated text",
	} {
		if !strings.Contains(chat, want) {
			t.Errorf("Chat prompt missing %q", want)
		}
	}
}

func TestLoadPrompts(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantBatch string
		wantChat  string
		wantErr   bool
	}{
		{
			name:      "both overridden",
			content:   "batch: \"Batch into {{targetLang}}\"\nchat: \"Chat into {{targetLang}}\"\n",
			wantBatch: "Batch into Italian",
			wantChat:  "Chat into Italian",
		},
		{
			name:      "only chat overridden",
			content:   "chat: |\n  Localize for {{targetLang}}\n",
			wantBatch: render(DefaultBatchPrompt, "it"),
			wantChat:  "Localize for Italian\n",
		},
		{
			name:    "invalid yaml",
			content: "batch: [unclosed",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "prompts.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("Failed to write prompts file: %v", err)
			}

			prompts, err := LoadPrompts(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadPrompts() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got := prompts.BatchPrompt("it"); got != tt.wantBatch {
				t.Errorf("BatchPrompt() = %q, want %q", got, tt.wantBatch)
			}
			if got := prompts.ChatPrompt("it"); got != tt.wantChat {
				t.Errorf("ChatPrompt() = %q, want %q", got, tt.wantChat)
			}
		})
	}
}

func TestLoadPrompts_MissingFile(t *testing.T) {
	prompts, err := LoadPrompts(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Expected missing file to fall back to defaults, got %v", err)
	}
	if prompts.Batch != DefaultBatchPrompt || prompts.Chat != DefaultChatPrompt {
		t.Error("Expected default prompts")
	}

	prompts, err = LoadPrompts("")
	if err != nil || prompts.Batch != DefaultBatchPrompt {
		t.Errorf("LoadPrompts(\"\") = %v, %v; want defaults", prompts, err)
	}
}
