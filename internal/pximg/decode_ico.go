package pximg

import (
	"image"
	"io"

	"github.com/biessek/golang-ico"
)

// decodeIco decodes the largest image in an ICO's embedded image
// directory. ico.Decode already picks a single representative image
// from the directory, matching the dispatcher's single-image contract.
func decodeIco(r io.Reader) (image.Image, error) {
	return ico.Decode(r)
}
