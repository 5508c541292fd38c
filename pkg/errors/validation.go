package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxLemmaLength bounds lemmas accepted from users; real headwords are far shorter.
const maxLemmaLength = 256

// ValidateLemma validates a lemma before it is substituted into analysis strings.
//
// The validation rules are intentionally conservative:
//   - No empty lemmas
//   - Valid UTF-8
//   - No control characters (tabs and newlines would corrupt layouts and
//     the line-oriented generator protocol)
//   - Maximum length of 256 bytes
func ValidateLemma(lemma string) error {
	if lemma == "" {
		return New(ErrCodeInvalidInput, "lemma cannot be empty")
	}

	if len(lemma) > maxLemmaLength {
		return New(ErrCodeInvalidInput, "lemma too long (max %d bytes)", maxLemmaLength)
	}

	if !utf8.ValidString(lemma) {
		return New(ErrCodeInvalidInput, "lemma is not valid UTF-8")
	}

	for _, r := range lemma {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "lemma contains invalid control characters")
		}
	}

	if strings.TrimSpace(lemma) != lemma {
		return New(ErrCodeInvalidInput, "lemma has leading or trailing whitespace")
	}

	return nil
}

// ValidateLayoutFilename validates a layout filename for safety.
// It ensures the filename is a simple basename without path components.
func ValidateLayoutFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidLayout, "layout filename cannot be empty")
	}

	// Must be a simple filename, not a path
	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidLayout, "layout filename cannot contain path separators")
	}

	if strings.HasPrefix(filename, ".") {
		return New(ErrCodeInvalidLayout, "layout filename cannot be a hidden file")
	}

	return nil
}
