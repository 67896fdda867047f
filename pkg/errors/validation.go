package errors

import (
	"strings"
	"unicode"
)

// MaxLabelLength bounds curve label text accepted from external input.
const MaxLabelLength = 128

// MaxNotationLength bounds the size of a text-notation description.
const MaxNotationLength = 64 << 10

// ValidateLabel validates curve label text coming from JSON, TOML or the API.
//
// The rules are conservative:
//   - No empty labels
//   - No control characters or whitespace
//   - No commas or apostrophes (they are separators in the text notation)
//   - Maximum length of MaxLabelLength bytes
func ValidateLabel(label string) error {
	if label == "" {
		return New(ErrCodeInvalidLabel, "curve label cannot be empty")
	}

	if len(label) > MaxLabelLength {
		return New(ErrCodeInvalidLabel, "curve label too long (max %d characters)", MaxLabelLength)
	}

	for _, r := range label {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidLabel, "curve label %q contains whitespace or control characters", label)
		}
	}

	if strings.ContainsAny(label, ",'") {
		return New(ErrCodeInvalidLabel, "curve label %q contains reserved characters", label)
	}

	return nil
}

// ValidateNotation performs cheap sanity checks on a text-notation string
// before it is parsed.
func ValidateNotation(s string) error {
	if len(s) > MaxNotationLength {
		return New(ErrCodeInvalidNotation, "notation too long (max %d bytes)", MaxNotationLength)
	}
	for _, r := range s {
		if r == '\x00' || (unicode.IsControl(r) && r != '\n' && r != '\t' && r != '\r') {
			return New(ErrCodeInvalidNotation, "notation contains invalid control characters")
		}
	}
	return nil
}

// ValidatePath validates an output path supplied on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
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

	return nil
}
