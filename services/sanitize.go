package services

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// textPolicy strips all markup; form fields here are plain text.
var textPolicy = bluemonday.StrictPolicy()

// SanitizeText removes any markup from a free-text form value and trims
// surrounding whitespace. Applied to names, addresses and qualifications
// before they reach storage.
func SanitizeText(s string) string {
	return strings.TrimSpace(textPolicy.Sanitize(s))
}

// SanitizeTextPtr sanitizes an optional form value, mapping a blank result to
// nil.
func SanitizeTextPtr(s string) *string {
	cleaned := SanitizeText(s)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}
