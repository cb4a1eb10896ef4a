package services

import (
	"strconv"
	"strings"
)

// ByteRange is a validated, clamped span within a resource of known
// size. End is inclusive, as on the wire.
type ByteRange struct {
	Start int64
	End   int64
}

// Length returns the number of bytes the span covers.
func (r ByteRange) Length() int64 {
	return r.End - r.Start + 1
}

// ParseRange parses a "bytes=start-end" header value against the
// resource size. It returns ok=false when the header is absent or not
// parseable, in which case the caller must degrade to a full-body 200
// response rather than fail the request. Successfully parsed ranges are
// clamped: start into [0, size-1], end into [start, size-1], an omitted
// end meaning end-of-resource.
func ParseRange(header string, size int64) (ByteRange, bool) {
	if size <= 0 {
		return ByteRange{}, false
	}

	header = strings.TrimSpace(header)
	if !strings.HasPrefix(header, "bytes=") {
		return ByteRange{}, false
	}
	spec := strings.TrimPrefix(header, "bytes=")

	// Multi-range requests are served as a single full body.
	if strings.Contains(spec, ",") {
		return ByteRange{}, false
	}

	startStr, endStr, found := strings.Cut(spec, "-")
	if !found {
		return ByteRange{}, false
	}

	start, err := strconv.ParseInt(strings.TrimSpace(startStr), 10, 64)
	if err != nil || start < 0 {
		return ByteRange{}, false
	}
	if start > size-1 {
		start = size - 1
	}

	end := size - 1
	if trimmed := strings.TrimSpace(endStr); trimmed != "" {
		end, err = strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return ByteRange{}, false
		}
		if end > size-1 {
			end = size - 1
		}
	}
	if end < start {
		end = start
	}

	return ByteRange{Start: start, End: end}, true
}
