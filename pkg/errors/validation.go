package errors

import (
	"strings"
	"unicode"
)

const maxTrackNameLength = 256

// ValidateTrackName validates a track name before it is used as a chart
// category and as part of cache keys.
//
// Rules:
//   - No empty or whitespace-only names
//   - No control characters
//   - Maximum length of 256 bytes
func ValidateTrackName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidTrack, "track name cannot be empty")
	}

	if len(name) > maxTrackNameLength {
		return New(ErrCodeInvalidTrack, "track name too long (max %d characters)", maxTrackNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidTrack, "track name %q contains invalid control characters", name)
		}
	}

	return nil
}

// ValidateOutputPath validates a path the CLI is about to write to.
// It rejects empty paths, null bytes, and paths that name a directory
// (trailing separator).
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "output path cannot be empty")
	}
	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidInput, "output path contains null byte")
	}
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidInput, "output path %q is a directory", path)
	}
	return nil
}
