package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// mavenIDRegex matches valid Maven groupId and artifactId segments.
var mavenIDRegex = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.\-]*$`)

// ValidateCoordinatePart validates a groupId or artifactId.
// It rejects values that could escape a repository root when mapped to a path.
//
// The validation rules are intentionally conservative:
//   - No empty values
//   - No control characters
//   - No path traversal sequences (..)
//   - Maximum length of 256 characters
func ValidateCoordinatePart(kind, value string) error {
	if value == "" {
		return New(ErrCodeInvalidCoordinate, "%s cannot be empty", kind)
	}

	if len(value) > 256 {
		return New(ErrCodeInvalidCoordinate, "%s too long (max 256 characters)", kind)
	}

	for _, r := range value {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidCoordinate, "%s contains invalid control characters", kind)
		}
	}

	if strings.Contains(value, "..") {
		return New(ErrCodeInvalidCoordinate, "%s contains path traversal sequence: %q", kind, value)
	}

	if !mavenIDRegex.MatchString(value) {
		return New(ErrCodeInvalidCoordinate, "invalid %s: %q", kind, value)
	}

	return nil
}

// ValidateVersion validates a resolved version string.
func ValidateVersion(version string) error {
	if strings.TrimSpace(version) == "" {
		return New(ErrCodeInvalidCoordinate, "version cannot be empty")
	}
	if strings.ContainsAny(version, "/\\") || strings.Contains(version, "..") {
		return New(ErrCodeInvalidCoordinate, "version contains invalid characters: %q", version)
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
