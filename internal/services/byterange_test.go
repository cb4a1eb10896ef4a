package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRange(t *testing.T) {
	const size = int64(1000)

	tests := []struct {
		name   string
		header string
		ok     bool
		start  int64
		end    int64
	}{
		{"full span", "bytes=0-999", true, 0, 999},
		{"interior span", "bytes=100-199", true, 100, 199},
		{"open end", "bytes=500-", true, 500, 999},
		{"end clamped to size", "bytes=900-5000", true, 900, 999},
		{"start clamped to last byte", "bytes=5000-6000", true, 999, 999},
		{"end below start clamped up", "bytes=200-100", true, 200, 200},
		{"single byte", "bytes=0-0", true, 0, 0},
		{"whitespace tolerated", "bytes= 10 - 20 ", true, 10, 20},
		{"absent header", "", false, 0, 0},
		{"wrong unit", "items=0-10", false, 0, 0},
		{"missing dash", "bytes=100", false, 0, 0},
		{"suffix form degrades", "bytes=-500", false, 0, 0},
		{"garbage start", "bytes=abc-10", false, 0, 0},
		{"garbage end", "bytes=10-xyz", false, 0, 0},
		{"multi-range degrades", "bytes=0-10,20-30", false, 0, 0},
		{"negative start", "bytes=-5-10", false, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng, ok := ParseRange(tt.header, size)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.start, rng.Start)
				assert.Equal(t, tt.end, rng.End)
				assert.Equal(t, tt.end-tt.start+1, rng.Length())
			}
		})
	}

	t.Run("zero-size resource never yields a range", func(t *testing.T) {
		_, ok := ParseRange("bytes=0-10", 0)
		assert.False(t, ok)
	})

	t.Run("spec scenario 10MB video span", func(t *testing.T) {
		rng, ok := ParseRange("bytes=1000000-1999999", 10485760)
		assert.True(t, ok)
		assert.Equal(t, int64(1000000), rng.Start)
		assert.Equal(t, int64(1999999), rng.End)
		assert.Equal(t, int64(1000000), rng.Length())
	})
}
