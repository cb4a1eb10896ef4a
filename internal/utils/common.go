package utils

import (
	"mime"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Common utilities used across lanshare

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// GetFileExtension extracts and normalizes the file extension
func GetFileExtension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return strings.TrimPrefix(ext, ".")
}

// SanitizeFilename reduces a user-supplied name to a filesystem-safe
// form. Path separators and control characters are stripped; the result
// may be empty when the input carries nothing usable.
func SanitizeFilename(name string) string {
	// Drop any directory component the client smuggled in.
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "." || name == ".." {
		return ""
	}
	return name
}

// NewStorageName combines a fresh random token with the sanitized name
// so concurrent uploads of the same filename never collide on disk.
func NewStorageName(sanitized string) string {
	return uuid.New().String() + "_" + sanitized
}

// ContentTypeFor resolves the Content-Type served for a display name,
// falling back to octet-stream for unknown extensions.
func ContentTypeFor(filename string) string {
	if ct := mime.TypeByExtension(filepath.Ext(filename)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
