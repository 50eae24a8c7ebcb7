package textproc

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var urlRe = regexp.MustCompile(`(?:https?|http|www)\S+`)

// Normalize canonicalizes a message before vectorization: lowercase,
// strip URL-like substrings, collapse runs of whitespace to a single
// space and trim. The function is pure and idempotent.
func Normalize(text string) string {
	text = strings.ToLower(text)
	text = urlRe.ReplaceAllString(text, "")

	var b strings.Builder
	b.Grow(len(text))
	space := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			space = b.Len() > 0
			continue
		}
		if space {
			b.WriteByte(' ')
			space = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SanitizeUTF8 drops invalid UTF-8 sequences from text. Messages decoded
// from the legacy Latin-1 corpus occasionally carry stray bytes.
func SanitizeUTF8(text string) string {
	if utf8.ValidString(text) {
		return text
	}

	result := make([]rune, 0, len(text))
	for i, r := range text {
		if r == utf8.RuneError {
			_, size := utf8.DecodeRuneInString(text[i:])
			if size == 1 {
				continue
			}
		}
		result = append(result, r)
	}
	return string(result)
}

// Truncate safely truncates text to at most maxSize bytes, backing off
// to the nearest valid UTF-8 boundary.
func Truncate(text string, maxSize int) string {
	if maxSize <= 0 || len(text) <= maxSize {
		return text
	}

	truncated := text[:maxSize]
	for !utf8.ValidString(truncated) && len(truncated) > 0 {
		truncated = truncated[:len(truncated)-1]
	}
	return truncated
}
