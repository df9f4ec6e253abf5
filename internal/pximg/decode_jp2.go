package pximg

import (
	"image"
	"io"

	jpeg2000 "github.com/mrjoshuak/go-jpeg2000"
)

// decodeJpeg2000 decodes a JPEG 2000 codestream or JP2-boxed file. The
// same entry point handles both Jpeg2000 sniff results (raw J2K and
// boxed JP2/JPX alike); the library detects the wrapper itself.
func decodeJpeg2000(r io.Reader) (image.Image, error) {
	return jpeg2000.Decode(r)
}
