package errors

import (
	"strconv"
	"strings"
	"unicode"
)

// ValidateStationID validates a station identifier taken from a URL or a flag.
// Identifiers are positive decimal integers, the same shape as GTFS stop ids
// in the host dataset.
func ValidateStationID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "station id cannot be empty")
	}
	if len(id) > 18 {
		return New(ErrCodeInvalidID, "station id too long (max 18 digits)")
	}
	n, err := strconv.Atoi(id)
	if err != nil {
		return New(ErrCodeInvalidID, "station id must be numeric: %q", id)
	}
	if n <= 0 {
		return New(ErrCodeInvalidID, "station id must be positive: %d", n)
	}
	return nil
}

// ValidatePath validates a relative dataset path for safety.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateURL validates an image or service URL.
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
