package translation

import "testing"

func TestLanguageName(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"en", "English"},
		{"de", "German"},
		{"fr", "French"},
		{"zh", "Chinese"},
		{"ja", "Japanese"},
		{" es ", "Spanish"},
		{"", "English"},
		{"not a language!", "not a language!"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := LanguageName(tt.code); got != tt.want {
				t.Errorf("LanguageName(%q) = %q, want %q", tt.code, got, tt.want)
			}
		})
	}
}
