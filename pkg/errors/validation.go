package errors

import (
	"strings"
	"unicode"
)

// ValidateCrateName validates a crate name before it is passed to external
// tooling or interpolated into registry URLs. It rejects names that could be
// used for path traversal or command injection.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., //, backslash)
//   - Maximum length of 64 characters (the crates.io limit)
//   - Only ASCII letters, digits, hyphens, and underscores
func ValidateCrateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidCrate, "crate name cannot be empty")
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidCrate, "crate name too long (max 64 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidCrate, "crate name contains control characters")
		}
	}

	dangerousPatterns := []string{"..", "//", "\x00", "\\"}
	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidCrate, "crate name contains invalid sequence: %q", pattern)
		}
	}

	for _, r := range name {
		if r > unicode.MaxASCII || (!unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_') {
			return New(ErrCodeInvalidCrate, "crate name contains invalid character: %q", r)
		}
	}

	return nil
}
