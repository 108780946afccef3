package formatter

import (
	"strconv"
	"strings"
	"unicode"
)

// FormatNumber converts an integer to a string with commas as thousands separators.
// Example: 1234567 -> "1,234,567"
func FormatNumber(n int) string {
	s := strconv.Itoa(n)
	neg := n < 0
	if neg {
		s = s[1:]
	}

	var sb strings.Builder
	lead := len(s) % 3
	if lead == 0 {
		lead = 3
	}
	sb.WriteString(s[:lead])
	for i := lead; i < len(s); i += 3 {
		sb.WriteByte(',')
		sb.WriteString(s[i : i+3])
	}

	if neg {
		return "-" + sb.String()
	}
	return sb.String()
}

// FormatDimensions renders a pixel size such as "4,000×6,000".
func FormatDimensions(width, height int) string {
	return FormatNumber(width) + "×" + FormatNumber(height)
}

// SanitizeFilenamePart keeps ASCII letters, digits, '_', '-' and whitespace,
// then replaces each whitespace run with a single '_'. Dropped characters do
// not split a run: "a &  b" becomes "a_b".
func SanitizeFilenamePart(s string) string {
	var sb strings.Builder
	inSpace := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			if !inSpace {
				sb.WriteByte('_')
			}
			inSpace = true
		case isFilenameRune(r):
			sb.WriteRune(r)
			inSpace = false
		}
	}
	return sb.String()
}

func isFilenameRune(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_' || r == '-'
}

// EscapeMarkdownV2 escapes special characters in Markdown V2 format
func EscapeMarkdownV2(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '_', '*', '[', ']', '(', ')', '~', '`', '>', '#', '+', '-', '=', '|', '{', '}', '.', '!', '\\':
			sb.WriteRune('\\')
			sb.WriteRune(r)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
