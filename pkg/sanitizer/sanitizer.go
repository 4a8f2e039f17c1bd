// Package sanitizer normalizes free-text input before validation and
// storage. All functions are idempotent and never return errors;
// hopeless input comes back as the empty string.
package sanitizer

import (
	"strings"
	"unicode"
)

// TrimAndNormalize trims the string and collapses internal whitespace
// runs to a single space. Control characters are dropped.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var b strings.Builder
	lastWasSpace := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			if !lastWasSpace {
				b.WriteRune(' ')
				lastWasSpace = true
			}
		case unicode.IsControl(r):
			// skip
		default:
			b.WriteRune(r)
			lastWasSpace = false
		}
	}

	return b.String()
}

// NormalizeName handles person and property names.
func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

// NormalizeEmail lowercases the address after trimming; email matching
// is case-insensitive everywhere in the system.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePlace handles city and state values.
func NormalizePlace(place string) string {
	return TrimAndNormalize(place)
}
