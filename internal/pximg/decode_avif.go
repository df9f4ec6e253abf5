package pximg

import (
	"image"
	"io"

	"github.com/gen2brain/avif"
)

// decodeAvif decodes a single still frame from an AVIF container. An
// animated AVIF decodes its first frame only, matching the dispatcher's
// documented single-image contract.
func decodeAvif(r io.Reader) (image.Image, error) {
	return avif.Decode(r)
}
