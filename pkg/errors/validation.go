package errors

import (
	"strings"
	"unicode"
)

// maxNameLength bounds puzzle names so they stay usable as cache keys and
// output file names.
const maxNameLength = 128

// ValidatePuzzleName validates a user-supplied puzzle name.
// Names end up in cache keys, log lines and derived output paths, so the
// rules are conservative:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidatePuzzleName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "puzzle name cannot be empty")
	}

	if len(name) > maxNameLength {
		return New(ErrCodeInvalidInput, "puzzle name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "puzzle name contains invalid control characters")
		}
	}

	for _, pattern := range []string{"..", "/", "\\", "\x00"} {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidInput, "puzzle name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateLevel checks that n is a level number in [1, count].
func ValidateLevel(n, count int) error {
	if n < 1 || n > count {
		return New(ErrCodeInvalidLevel, "level %d out of range [1, %d]", n, count)
	}
	return nil
}
