package internal

import (
	"regexp"
	"testing"
)

func TestGenerateJobID(t *testing.T) {
	id := GenerateJobID("words.xlsx")

	pattern := regexp.MustCompile(`^\d+_[0-9a-f]{8}$`)
	if !pattern.MatchString(id) {
		t.Errorf("GenerateJobID() = %q, does not match %s", id, pattern)
	}

	other := GenerateJobID("other.xlsx")
	if id[len(id)-8:] == other[len(other)-8:] {
		t.Errorf("Expected different hash suffix for different names, got %q and %q", id, other)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "words.xlsx", "words.xlsx"},
		{"spaces", "my words.xlsx", "my_words.xlsx"},
		{"cyrillic", "думи.xlsx", "думи.xlsx"},
		{"quotes", `a"b.xlsx`, "a_b.xlsx"},
		{"unix path", "../../etc/passwd", "passwd"},
		{"windows path", `C:\Users\me\list.xlsx`, "list.xlsx"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFilename(tt.input); got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
