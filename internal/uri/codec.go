// Package uri maps resource URIs to filesystem paths.
//
// Each resource kind owns a scheme prefix (file://metadata/, file://content/,
// file://directory/). Only four escapes are understood: %20, %2F, %5C and
// %3A. Anything else is passed through untouched.
package uri

import (
	"fmt"
	"regexp"
	"strings"

	"fs-resource-server/internal/errors"
)

// Resource URI prefixes.
const (
	MetadataPrefix  = "file://metadata/"
	ContentPrefix   = "file://content/"
	DirectoryPrefix = "file://directory/"
)

var (
	decoder = strings.NewReplacer(
		"%20", " ",
		"%2F", "/",
		"%5C", `\`,
		"%3A", ":",
	)
	encoder = strings.NewReplacer(
		" ", "%20",
		`\`, "%5C",
		":", "%3A",
	)
	recursiveParam = regexp.MustCompile(`[?&]recursive=(true|false)`)
)

// Decode strips prefix from rawURI and substitutes the four supported escape
// sequences. It fails with errors.KindInvalidAddress when the prefix is missing.
func Decode(rawURI, prefix string) (string, error) {
	if !strings.HasPrefix(rawURI, prefix) {
		return "", errors.NewFileError(errors.KindInvalidAddress, rawURI,
			fmt.Sprintf("Invalid URI format: %s", rawURI), nil)
	}
	return decoder.Replace(rawURI[len(prefix):]), nil
}

// Encode is the inverse of Decode. Slashes are left literal.
func Encode(prefix, path string) string {
	return prefix + encoder.Replace(path)
}

// StripQuery drops everything from the first '?' on.
func StripQuery(rawURI string) string {
	if i := strings.IndexByte(rawURI, '?'); i >= 0 {
		return rawURI[:i]
	}
	return rawURI
}

// Recursive reports the recursive=true|false flag carried by a listing URI.
// Absent or malformed values yield false.
func Recursive(rawURI string) bool {
	m := recursiveParam.FindStringSubmatch(rawURI)
	return len(m) == 2 && m[1] == "true"
}

// DecodeDirectory decodes a listing URI into its path and recursive flag.
func DecodeDirectory(rawURI string) (string, bool, error) {
	path, err := Decode(StripQuery(rawURI), DirectoryPrefix)
	if err != nil {
		return "", false, err
	}
	return path, Recursive(rawURI), nil
}
