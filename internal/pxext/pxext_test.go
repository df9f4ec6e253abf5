package pxext_test

import (
	"strings"
	"testing"

	"github.com/blobfolio/pxsum/internal/pxext"
)

var supportedExts = []string{
	"bmp", "gif", "ico", "jp2", "j2c", "j2k", "jpc", "jpg", "jxl", "png", "tif",
	"avif", "jpeg", "webp", "jpg2", "tiff",
}

// TestCaseInsensitivity covers property 1 from spec.md §8: for every
// supported extension and every casing, the filter matches.
func TestCaseInsensitivity(t *testing.T) {
	for _, ext := range supportedExts {
		for _, c := range []string{strings.ToLower(ext), strings.ToUpper(ext)} {
			path := "foo." + c
			if !pxext.Match(path) {
				t.Errorf("Match(%q) = false, want true", path)
			}
		}
	}
}

func TestBoundary(t *testing.T) {
	if pxext.Match("foo/.png") {
		t.Error(`Match("foo/.png") = true, want false`)
	}
	if pxext.Match(`foo\.png`) {
		t.Error(`Match("foo\\.png") = true, want false`)
	}
	if pxext.Match(".png") {
		t.Error(`Match(".png") = true, want false`)
	}
}

func TestUnsupportedExtension(t *testing.T) {
	for _, path := range []string{"foo.txt", "foo", "foo.p", "foo.pngx", "foo.bm"} {
		if pxext.Match(path) {
			t.Errorf("Match(%q) = true, want false", path)
		}
	}
}

func TestOrdinaryPaths(t *testing.T) {
	for _, path := range []string{"foo.png", "./a/b/c.jpg", "/abs/path.JPEG", "dir.with.dots/x.webp"} {
		if !pxext.Match(path) {
			t.Errorf("Match(%q) = false, want true", path)
		}
	}
}
