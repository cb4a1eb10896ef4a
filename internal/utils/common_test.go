package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetFileExtension(t *testing.T) {
	assert.Equal(t, "mp4", GetFileExtension("Demo.MP4"))
	assert.Equal(t, "gz", GetFileExtension("archive.tar.gz"))
	assert.Equal(t, "", GetFileExtension("noext"))
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"demo.mp4", "demo.mp4"},
		{"my file (1).txt", "my_file_1_.txt"},
		{"../../etc/passwd", "passwd"},
		{`..\..\windows\system32`, "system32"},
		{"...", ""},
		{"", ""},
		{"报告.pdf", "pdf"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFilename(tt.in), "input=%q", tt.in)
	}
}

func TestNewStorageName(t *testing.T) {
	a := NewStorageName("a.png")
	b := NewStorageName("a.png")
	assert.NotEqual(t, a, b, "storage names embed a fresh token")
	assert.True(t, strings.HasSuffix(a, "_a.png"))
}

func TestContentTypeFor(t *testing.T) {
	assert.Contains(t, ContentTypeFor("a.png"), "image/png")
	assert.Equal(t, "application/octet-stream", ContentTypeFor("blob.unknownext"))
}
