package filesystem

import (
	"bytes"
	"strings"
)

// BinaryMediaType is reported for content returned as base64.
const BinaryMediaType = "application/octet-stream;base64"

// DefaultMediaType is used when no suffix in the table matches.
const DefaultMediaType = "text/plain"

// sampleSize is how many leading bytes IsBinary looks at.
const sampleSize = 8192

var mediaTypes = []struct {
	suffix    string
	mediaType string
}{
	{".txt", "text/plain"},
	{".html", "text/html"},
	{".htm", "text/html"},
	{".css", "text/css"},
	{".js", "application/javascript"},
	{".json", "application/json"},
	{".xml", "application/xml"},
	{".md", "text/markdown"},
	{".csv", "text/csv"},
	{".java", "text/x-java-source"},
	{".py", "text/x-python"},
	{".c", "text/x-c"},
	{".cpp", "text/x-c"},
	{".h", "text/x-c"},
}

// MimeTypeFor maps a path to a media type by case-insensitive suffix.
func MimeTypeFor(path string) string {
	lower := strings.ToLower(path)
	for _, m := range mediaTypes {
		if strings.HasSuffix(lower, m.suffix) {
			return m.mediaType
		}
	}
	return DefaultMediaType
}

// IsBinary reports whether sample holds a NUL byte within its first 8192 bytes.
// An empty sample is text.
func IsBinary(sample []byte) bool {
	if len(sample) > sampleSize {
		sample = sample[:sampleSize]
	}
	return bytes.IndexByte(sample, 0) >= 0
}
