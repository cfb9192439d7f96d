package internal

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

// Version is the application version reported by the CLI
const Version = "0.3.0"

// GenerateJobID creates a unique ID for a batch job based on timestamp and file name
// Format: epochMillis_md5(name)[:8]
func GenerateJobID(fileName string) string {
	epochMillis := time.Now().UnixNano() / 1000000

	hash := md5.Sum([]byte(fileName))
	hashStr := hex.EncodeToString(hash[:])[:8]

	return fmt.Sprintf("%d_%s", epochMillis, hashStr)
}

// SanitizeFilename creates a safe filename from an uploaded file name.
// Directory components are stripped; characters outside letters, digits,
// '-', '_' and '.' are replaced with '_'.
func SanitizeFilename(s string) string {
	s = filepath.Base(strings.ReplaceAll(s, "\\", "/"))
	if s == "." || s == "/" {
		return ""
	}

	var b strings.Builder
	for _, r := range s {
		if isAlphaNumeric(r) || r == '-' || r == '_' || r == '.' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

// isAlphaNumeric checks if a rune is a letter or digit in any script
func isAlphaNumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
