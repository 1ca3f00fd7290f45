package utils

import (
	"strconv"
	"strings"
	"unicode"
)

// FormatWithCommas renders an integer with thousands separators for CLI
// display, e.g. 12345 -> "12,345".
func FormatWithCommas(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// IsValidPrefix checks if a typed prefix is worth querying: non-empty, not
// pure repetition like "aaaa", and made of letters, digits and common
// separators. Item titles legitimately contain digits ("2% milk") so digits
// are allowed, unlike a plain word filter.
func IsValidPrefix(s string) bool {
	if len(s) == 0 {
		return false
	}
	if IsRepetitive(s) {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !isSeparator(r) {
			return false
		}
	}
	return true
}

// IsRepetitive checks if a string consists of one repeated character
// (e.g. "aaa", "www"). Two characters or fewer never count.
func IsRepetitive(s string) bool {
	if len(s) <= 2 {
		return false
	}
	firstChar := s[0]
	for i := 1; i < len(s); i++ {
		if s[i] != firstChar {
			return false
		}
	}
	return true
}

func isSeparator(r rune) bool {
	return r == ' ' || r == '_' || r == '-' || r == '.' || r == '/' || r == '%' || r == '\''
}
