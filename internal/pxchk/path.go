package pxchk

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/blobfolio/pxsum/internal/pxerr"
	"github.com/blobfolio/pxsum/internal/pxext"
)

// NormalizePath canonicalizes a raw, user-supplied path into the form
// stored in a Checksum record, per spec.md §4.7. It never touches the
// filesystem.
//
// NormalizePath is idempotent: normalizing its own output returns the
// same string unchanged.
func NormalizePath(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "-" {
		return "-", nil
	}
	if !utf8.ValidString(trimmed) {
		return "", pxerr.New(pxerr.Path, "path is not valid UTF-8")
	}
	if !pxext.Match(trimmed) {
		return "", pxerr.New(pxerr.Path, "unsupported file extension")
	}

	var b strings.Builder
	last := rune('?')
	if !strings.HasPrefix(trimmed, "/") && !strings.HasPrefix(trimmed, "./") && !strings.HasPrefix(trimmed, "../") {
		b.WriteString("./")
		last = '/'
	}

	for _, c := range trimmed {
		if last == '/' && c == '/' {
			continue
		}
		if c == '\\' || unicode.Is(unicode.Cc, c) {
			return "", pxerr.New(pxerr.Path, "path contains a disallowed character")
		}
		last = c
		b.WriteRune(c)
	}

	out := b.String()
	for {
		idx := strings.Index(out, "/./")
		if idx < 0 {
			break
		}
		out = out[:idx] + out[idx+2:]
	}

	if strings.HasPrefix(out, "/../") {
		return "", pxerr.New(pxerr.Path, "path escapes above the root")
	}
	return out, nil
}
