package errors

import (
	"regexp"
	"strings"
)

// hexColorRegex matches a 6-hex-digit color with an optional leading #.
var hexColorRegex = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)

// ValidateHexColor validates a 6-hex-digit color string.
// An optional leading # is accepted ("ff0000" and "#ff0000" are both valid).
func ValidateHexColor(s string) error {
	if s == "" {
		return New(ErrCodeInvalidColor, "color cannot be empty")
	}
	if !hexColorRegex.MatchString(s) {
		return New(ErrCodeInvalidColor, "invalid hex color: %q (expected 6 hex digits)", s)
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

// ValidateFontFamily validates a logical font family identifier.
// Family names are free-form strings matched against the font registry,
// but control characters and absurd lengths are rejected up front.
func ValidateFontFamily(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "font family cannot be empty")
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "font family too long (max 128 characters)")
	}
	for _, r := range name {
		if r < 0x20 || r == 0x7f {
			return New(ErrCodeInvalidInput, "font family contains control characters")
		}
	}
	return nil
}
