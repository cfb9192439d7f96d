package translation

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// DefaultLanguage is used when a request names no target language
const DefaultLanguage = "en"

// LanguageName returns the English display name for a language code, e.g.
// "de" -> "German". Values that are not valid BCP 47 tags are returned
// unchanged so free-form names like "Klingon" still reach the prompt.
func LanguageName(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		code = DefaultLanguage
	}

	tag, err := language.Parse(code)
	if err != nil {
		return code
	}

	name := display.English.Tags().Name(tag)
	if name == "" {
		return code
	}
	return name
}
