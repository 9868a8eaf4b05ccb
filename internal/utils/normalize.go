// Package utils has the shared text and file helpers used across storefind.
package utils

import "strings"

// Normalize folds free text into the canonical form used for matching:
// lowercase with every character outside [a-z0-9] removed.
// Non-ASCII letters are stripped rather than transliterated, so matching is
// accent-insensitive only in the sense that accented input never matches.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidQuery gates interactive input before it reaches the suggestion
// engine. The engine itself accepts anything; this only filters the obvious
// junk typed while mashing keys.
func IsValidQuery(s string) bool {
	if len(strings.TrimSpace(s)) == 0 {
		return false
	}
	return !IsRepetitive(s)
}

// IsRepetitive reports whether a string is one character repeated
// three or more times ("aaa", "wwww").
func IsRepetitive(s string) bool {
	if len(s) <= 2 {
		return false
	}
	first := s[0]
	for i := 1; i < len(s); i++ {
		if s[i] != first {
			return false
		}
	}
	return true
}
