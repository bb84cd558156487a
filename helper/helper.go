package helper

import "strings"

// NormalizeEmail trims surrounding whitespace from an email address
// before it is used as a lookup key. Case is preserved as sent.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

// NormalizeName trims surrounding whitespace from a display name.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}
