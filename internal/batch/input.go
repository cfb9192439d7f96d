package batch

import (
	"fmt"
	"os"

	"codeberg.org/snonux/lingosheet/internal/sheet"
)

// ReadTextFile reads a plain-text batch file into rows, one entry per
// line. Blank lines are skipped and CRLF line endings are accepted.
func ReadTextFile(filename string) ([]sheet.Row, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	var rows []sheet.Row
	for _, line := range splitLines(string(content)) {
		if line = trimSpace(line); line != "" {
			rows = append(rows, sheet.TextRow(line))
		}
	}
	return rows, nil
}

// splitLines splits a string by newlines, dropping carriage returns
func splitLines(s string) []string {
	var lines []string
	var current []rune
	for _, r := range s {
		if r == '\n' {
			lines = append(lines, string(current))
			current = current[:0]
		} else if r != '\r' {
			current = append(current, r)
		}
	}
	if len(current) > 0 {
		lines = append(lines, string(current))
	}
	return lines
}

// trimSpace trims ASCII whitespace from both ends
func trimSpace(s string) string {
	start := 0
	end := len(s)

	for start < end && isSpace(s[start]) {
		start++
	}
	for end > start && isSpace(s[end-1]) {
		end--
	}

	return s[start:end]
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
