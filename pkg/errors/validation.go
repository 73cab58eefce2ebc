package errors

import (
	"strings"
	"unicode"
)

// Duplicates returns the values that occur more than once in names, in order
// of their second occurrence. Each duplicate is reported once.
func Duplicates(names []string) []string {
	seen := make(map[string]int, len(names))
	var dups []string
	for _, n := range names {
		seen[n]++
		if seen[n] == 2 {
			dups = append(dups, n)
		}
	}
	return dups
}

// ValidateNames checks a row or column name set against the number of
// rows/columns it labels. A nil set is always valid (the axis is unnamed).
func ValidateNames(axis string, names []string, n int) error {
	if names == nil {
		return nil
	}
	if len(names) != n {
		return New(ErrCodeInvalidInput, "%s names have length %d, want %d", axis, len(names), n)
	}
	if dups := Duplicates(names); len(dups) > 0 {
		return New(ErrCodeInvalidInput, "duplicate %s names: %s", axis, strings.Join(dups, ", "))
	}
	return nil
}

// ValidateTableName validates a table or placement name.
//
// Names end up in viewport identifiers and storage keys, so control
// characters and the separators used by those formats are rejected.
func ValidateTableName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "name cannot be empty")
	}
	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "name too long (max 256 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "name contains invalid control characters")
		}
	}
	return nil
}

// ValidatePath validates a file path given on the command line or in a
// configuration file.
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
