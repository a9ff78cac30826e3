package devtools

import (
	"errors"
	"strings"
)

// Route prefix errors.
var (
	ErrBackslashInPrefix = errors.New("devtools prefix contains backslash")
	ErrQueryInPrefix     = errors.New("devtools prefix contains a query or fragment")
	ErrPrefixEscapesRoot = errors.New("devtools prefix escapes root via ..")
)

// CleanPrefix normalizes a route prefix: it gains a leading slash, loses
// any trailing slash, and has repeated slashes and dot segments removed.
// The root prefix is "/".
func CleanPrefix(prefix string) (string, error) {
	if strings.Contains(prefix, "\\") {
		return "", ErrBackslashInPrefix
	}
	if strings.ContainsAny(prefix, "?#") {
		return "", ErrQueryInPrefix
	}

	var segments []string
	for _, seg := range strings.Split(prefix, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(segments) == 0 {
				return "", ErrPrefixEscapesRoot
			}
			segments = segments[:len(segments)-1]
		default:
			segments = append(segments, seg)
		}
	}
	return "/" + strings.Join(segments, "/"), nil
}
