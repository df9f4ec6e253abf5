package pxkind

import (
	"bytes"

	"github.com/blobfolio/pxsum/internal/pxerr"
)

// MagicLen is the number of leading bytes Sniff needs to classify a
// stream; callers should prime their buffer with at least this many
// bytes before calling Sniff.
const MagicLen = 12

// Sniff classifies src by its leading magic bytes. src must hold at
// least MagicLen bytes or a Decode error is returned. Patterns are
// mutually exclusive; order of comparison does not matter.
func Sniff(src []byte) (Kind, error) {
	if len(src) < MagicLen {
		return 0, pxerr.New(pxerr.Decode, "fewer than 12 bytes available to sniff")
	}

	switch {
	case bytes.HasPrefix(src, []byte{0xff, 0xd8, 0xff}):
		return Jpeg, nil
	case bytes.HasPrefix(src, []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}):
		return Png, nil
	case bytes.HasPrefix(src, []byte{'G', 'I', 'F', '8'}) &&
		(src[4] == '7' || src[4] == '9') && src[5] == 'a':
		return Gif, nil
	case bytes.HasPrefix(src, []byte{'R', 'I', 'F', 'F'}) &&
		bytes.Equal(src[8:12], []byte("WEBP")):
		return WebP, nil
	case bytes.HasPrefix(src, []byte{0x00, 0x00, 0x00}) &&
		(src[3] == 0x20 || src[3] == 0x1c) &&
		bytes.Equal(src[4:12], []byte("ftypavif")):
		return Avif, nil
	case bytes.HasPrefix(src, []byte{0xff, 0x0a}):
		return JpegXl, nil
	case bytes.HasPrefix(src, []byte{0x00, 0x00, 0x00, 0x0c, 'J', 'X', 'L', 0x20, 0x0d, 0x0a, 0x87, 0x0a}):
		return JpegXl, nil
	case bytes.HasPrefix(src, []byte{'B', 'M'}):
		return Bmp, nil
	case bytes.HasPrefix(src, []byte{0x00, 0x00, 0x01, 0x00}):
		return Ico, nil
	case bytes.HasPrefix(src, []byte{0x00, 0x00, 0x00, 0x0c, 'j', 'P', 0x20, 0x20, 0x0d, 0x0a, 0x87, 0x0a}):
		return Jpeg2000, nil
	case bytes.HasPrefix(src, []byte{0xff, 'O', 0xff, 'Q'}):
		return Jpeg2000, nil
	case bytes.HasPrefix(src, []byte{'M', 'M', 0x00, '*'}):
		return Tiff, nil
	case bytes.HasPrefix(src, []byte{'I', 'I', '*', 0x00}):
		return Tiff, nil
	default:
		return 0, pxerr.New(pxerr.Decode, "unrecognized image signature")
	}
}
