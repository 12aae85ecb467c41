package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateName validates a display name (person name, role) for safety.
//
// The validation rules are intentionally conservative:
//   - No empty or whitespace-only names
//   - No control characters
//   - Maximum length of 128 characters
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "name contains invalid control characters")
		}
	}

	return nil
}

// idRegex matches identifiers accepted in URL path segments.
var idRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// ValidateID validates an identifier taken from a request path or a data file.
// IDs are limited to 64 ASCII letters, digits, dashes and underscores.
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "id cannot be empty")
	}

	if len(id) > 64 {
		return New(ErrCodeInvalidID, "id too long (max 64 characters)")
	}

	if !idRegex.MatchString(id) {
		return New(ErrCodeInvalidID, "invalid id: %q", id)
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// ValidateImage validates an optional image reference.
// Empty is allowed; anything else must be an http(s) URL or a site-relative path.
func ValidateImage(ref string) error {
	if ref == "" || strings.HasPrefix(ref, "/") && !strings.HasPrefix(ref, "//") {
		return nil
	}
	return ValidateURL(ref)
}
