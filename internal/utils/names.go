package utils

import (
	"strings"

	"golang.org/x/text/cases"
)

// FoldName returns the case-insensitive comparison key for a display name.
// Surrounding whitespace is ignored.
func FoldName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// NormalizeEmail lower-cases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
