package pxchk

import (
	"bufio"
	"io"
	"strings"
)

// ManifestLines normalizes a raw manifest's lines into flat
// "hash  path" lines, expanding any grouped-by-checksum blocks back
// out per spec.md §4.9. It is used the same way as bufio.Scanner: call
// Scan in a loop, read Text after each true result.
type ManifestLines struct {
	src     *bufio.Scanner
	group   string
	hasGrp  bool
	current string
}

// NewManifestLines wraps r's lines in a ManifestLines normalizer.
func NewManifestLines(r io.Reader) *ManifestLines {
	return &ManifestLines{src: bufio.NewScanner(r)}
}

// Scan advances to the next normalized line, reporting whether one was
// produced. It returns false at end of input or on a read error; check
// Err to distinguish the two.
func (m *ManifestLines) Scan() bool {
	for m.src.Scan() {
		line := strings.TrimRight(m.src.Text(), " \t\r\n\v\f")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if len(line) == 64 && isAllHex(line) {
			m.group = line
			m.hasGrp = true
			continue
		}

		if strings.HasPrefix(line, "  ") && m.hasGrp {
			m.current = m.group + line
			return true
		}

		m.hasGrp = false
		m.current = line
		return true
	}
	return false
}

// Text returns the most recent line produced by Scan.
func (m *ManifestLines) Text() string { return m.current }

// Err returns the first non-EOF error encountered while reading.
func (m *ManifestLines) Err() error { return m.src.Err() }

func isAllHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
