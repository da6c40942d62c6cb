package utils

import (
	"strconv"
	"strings"
	"unicode"
)

// ContainsIgnoreCase checks if string contains substring case-insensitively
func ContainsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// IsValidQuery checks if input should be processed as a search query.
// Trademark queries legitimately mix Hangul, jamo, Latin letters, digits
// and the separators found in application numbers; control characters are
// rejected.
func IsValidQuery(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// FormatWithCommas renders an integer with thousands separators for CLI
// output.
func FormatWithCommas(n int) string {
	neg := n < 0
	if neg {
		n = -n
	}
	digits := strconv.Itoa(n)
	var b strings.Builder
	for i, c := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
