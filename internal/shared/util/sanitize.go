package util

import (
	"errors"
	"path"
	"strings"
	"unicode"
	"unicode/utf8"
)

const maxFileNameBytes = 128

var ErrInvalidFileName = errors.New("invalid file name")

// SanitizeFileName turns an uploaded resume's file name into a storage-safe
// segment: separators become "_", whitespace runs become "-", control
// characters are dropped and long names are cut to 128 bytes keeping the
// extension. Traversal patterns are rejected.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrInvalidFileName
	}

	var b strings.Builder
	pendingSpace := false
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r == '/' || r == '\\':
			pendingSpace = false
			b.WriteRune('_')
		case unicode.IsSpace(r):
			pendingSpace = true
		case unicode.IsControl(r) || r == utf8.RuneError:
			continue
		default:
			if pendingSpace {
				b.WriteRune('-')
				pendingSpace = false
			}
			b.WriteRune(r)
		}
	}

	s := b.String()
	if s == "" {
		return "", ErrInvalidFileName
	}
	return truncateKeepingExt(s, maxFileNameBytes), nil
}

func truncateKeepingExt(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	ext := path.Ext(s)
	if len(ext) >= limit/2 {
		ext = ""
	}
	stem := s[:limit-len(ext)]
	for !utf8.ValidString(stem) {
		stem = stem[:len(stem)-1]
	}
	return stem + ext
}
