package errors

import (
	"strings"
	"unicode"
)

// ValidatePath validates a file path received over the HTTP API.
// It prevents path traversal and ensures reasonable path length, so that
// request paths can be joined under the server's root directory.
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

// ValidateImagePath validates an output image path: a safe relative path
// ending in .png.
func ValidateImagePath(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	if !strings.EqualFold(extension(path), ".png") {
		return New(ErrCodeInvalidPath, "image path must end in .png: %q", path)
	}
	return nil
}

func extension(path string) string {
	i := strings.LastIndexAny(path, "./")
	if i < 0 || path[i] != '.' {
		return ""
	}
	return path[i:]
}
