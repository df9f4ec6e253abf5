package pximg

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"

	"github.com/blobfolio/pxsum/internal/pxerr"
	"github.com/blobfolio/pxsum/internal/pxkind"
)

// Decode routes src through the decoder appropriate for kind and
// normalizes the result to a canonical PixelImage.
//
// Any decoder error becomes a Decode error; there are no partial
// results. Multi-frame formats (GIF, animated WebP/AVIF) decode their
// first frame only, since every backend below exposes a single-image
// Decode rather than a frame-sequence API.
func Decode(src []byte, kind pxkind.Kind) (*PixelImage, error) {
	r := bytes.NewReader(src)

	var (
		img image.Image
		err error
	)

	switch kind {
	case pxkind.Jpeg:
		img, err = jpeg.Decode(r)
	case pxkind.Png:
		img, err = png.Decode(r)
	case pxkind.Gif:
		img, err = gif.Decode(r)
	case pxkind.Bmp:
		img, err = bmp.Decode(r)
	case pxkind.Tiff:
		img, err = tiff.Decode(r)
	case pxkind.WebP:
		img, err = webp.Decode(r)
	case pxkind.Ico:
		img, err = decodeIco(r)
	case pxkind.Avif:
		img, err = decodeAvif(r)
	case pxkind.Jpeg2000:
		img, err = decodeJpeg2000(r)
	case pxkind.JpegXl:
		img, err = decodeJpegXl(r)
	default:
		return nil, pxerr.New(pxerr.Decode, "unknown image kind")
	}

	if err != nil {
		return nil, pxerr.Wrap(pxerr.Decode, kind.String()+" decode failed", err)
	}
	if img == nil {
		return nil, pxerr.New(pxerr.Decode, kind.String()+" decoder returned no image")
	}

	return fromDecoded(img)
}
