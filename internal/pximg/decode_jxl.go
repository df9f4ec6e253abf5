package pximg

import (
	"image"
	"io"

	"github.com/gen2brain/jpegxl"
)

// decodeJpegXl decodes a JPEG XL stream, naked codestream or ISOBMFF
// container alike; the library distinguishes the two internally.
func decodeJpegXl(r io.Reader) (image.Image, error) {
	return jpegxl.Decode(r)
}
