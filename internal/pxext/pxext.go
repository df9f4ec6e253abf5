// Package pxext implements the extension filter: a predicate over a
// path's ASCII byte suffix that decides whether a file name plausibly
// names a supported image, without touching the filesystem.
package pxext

import "strings"

// ext3 holds the supported three-letter extensions, lowercased, without
// the leading dot.
var ext3 = map[string]struct{}{
	"bmp": {},
	"gif": {},
	"ico": {},
	"jp2": {},
	"j2c": {},
	"j2k": {},
	"jpc": {},
	"jpg": {},
	"jxl": {},
	"png": {},
	"tif": {},
}

// ext4 holds the supported four-letter extensions, lowercased.
var ext4 = map[string]struct{}{
	"avif": {},
	"jpeg": {},
	"webp": {},
	"jpg2": {},
	"tiff": {},
}

// Match reports whether path's final path component ends with a
// supported three- or four-letter extension, per spec.md §4.1.
//
// The byte immediately preceding the dot must be neither '/' nor '\\'
// (an empty-relative-to-separator extension never matches). Comparison
// is ASCII case-insensitive. Match never touches the filesystem.
func Match(path string) bool {
	n := len(path)
	if n < 4 {
		return false
	}

	// Try the four-letter suffix first (".xxxx" is 5 bytes), then the
	// three-letter suffix (".xxx" is 4 bytes).
	if n >= 5 {
		if dot := path[n-5]; dot == '.' && boundaryOK(path, n-5) {
			if _, ok := ext4[strings.ToLower(path[n-4:])]; ok {
				return true
			}
		}
	}
	if dot := path[n-4]; dot == '.' && boundaryOK(path, n-4) {
		if _, ok := ext3[strings.ToLower(path[n-3:])]; ok {
			return true
		}
	}
	return false
}

// boundaryOK reports whether the byte immediately before the dot at
// index dotPos is neither '/' nor '\\', i.e. the extension is non-empty
// relative to any directory separator.
func boundaryOK(path string, dotPos int) bool {
	if dotPos == 0 {
		return false
	}
	before := path[dotPos-1]
	return before != '/' && before != '\\'
}
