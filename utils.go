package shelf

import (
	"path"
	"strings"
	"unicode/utf8"
)

// CleanRequestPath converts a request URL path into a relative path safe to
// hand to a sandboxed content root. The cleaned path is "." for the root.
//
// It returns ErrInvalidInput when the path:
//   - is not valid UTF-8
//   - contains a null byte, another control character, or a backslash
//   - contains a ".." segment (traversal attempt)
func CleanRequestPath(p string) (string, error) {
	if !utf8.ValidString(p) {
		return "", ErrInvalidInput
	}

	for _, r := range p {
		if r == 0 || r < 0x20 || r == 0x7f || r == '\\' {
			return "", ErrInvalidInput
		}
	}

	if hasDotDotSegment(p) {
		return "", ErrInvalidInput
	}

	cleaned := strings.TrimPrefix(path.Clean("/"+p), "/")
	if cleaned == "" {
		cleaned = "."
	}

	return cleaned, nil
}

func hasDotDotSegment(p string) bool {
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return true
		}
	}
	return false
}
