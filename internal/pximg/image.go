// Package pximg decodes encoded image bytes into a canonical 8-bit RGBA
// pixel buffer and computes its checksum.
//
// Decoding is not unified behind one library: stdlib covers JPEG/PNG/GIF,
// golang.org/x/image covers BMP/TIFF/WebP, and AVIF/JPEG 2000/JPEG XL each
// get their own dedicated backend (see decode_avif.go, decode_jp2.go,
// decode_jxl.go). The dispatcher's contract is what's uniform: every arm
// returns the same PixelImage shape.
package pximg

import (
	"image"
	"image/color"

	"github.com/blobfolio/pxsum/internal/pxerr"
)

// PixelImage owns a byte buffer of RGBA8 pixels in scanline order
// (top-left origin), plus a flag recording whether the originating
// format was known to lack an alpha channel.
type PixelImage struct {
	// Pix is the pixel buffer. Its length is always a nonzero multiple
	// of 4.
	Pix []byte

	// NoAlpha is true when the source pixel type was 8-bit RGB, 8/16-bit
	// grayscale, 16-bit RGB, or 32-bit-float RGB.
	NoAlpha bool
}

// fromDecoded converts a decoded image.Image into a canonical PixelImage.
//
// It returns a decode error if the resulting buffer is not a multiple of
// 4 bytes, and a no-data error if it is empty.
func fromDecoded(img image.Image) (*PixelImage, error) {
	pix := toRGBA8(img)
	if len(pix) == 0 {
		return nil, pxerr.New(pxerr.NoData, "decoded image has no pixels")
	}
	if len(pix)%4 != 0 {
		return nil, pxerr.New(pxerr.Decode, "decoded pixel buffer is not RGBA-aligned")
	}
	return &PixelImage{Pix: pix, NoAlpha: noAlpha(img)}, nil
}

// noAlpha reports whether img's concrete decoded type is known to have
// come from an alpha-free source: 8-bit RGB, 8/16-bit grayscale, or
// 16-bit RGB. Anything else — including palette images, which may carry
// alpha via a transparency entry — defaults to false per spec.md §4.3.
//
// image.RGBA/image.RGBA64 are included here because every stdlib and
// golang.org/x/image decoder only ever constructs them for
// opaque-by-construction truecolor data; a format that can carry real
// alpha always decodes to image.NRGBA/image.NRGBA64 instead.
func noAlpha(img image.Image) bool {
	switch img.(type) {
	case *image.Gray, *image.Gray16, *image.RGBA, *image.RGBA64, *image.YCbCr, *image.CMYK:
		return true
	default:
		return false
	}
}

// toRGBA8 flattens img into a tightly packed RGBA8 scanline buffer,
// top-left origin, no padding. Alpha is promoted to 255 when the source
// has none. Common stdlib concrete types take a direct-copy fast path;
// anything else falls back to a per-pixel color.Color conversion, which
// is correct for every image.Image but considerably slower.
func toRGBA8(img image.Image) []byte {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil
	}

	switch src := img.(type) {
	case *image.NRGBA:
		return copyRows(src.Pix, src.Stride, b, 4, nil)
	case *image.RGBA:
		return copyRows(src.Pix, src.Stride, b, 4, forceOpaque)
	case *image.Gray:
		return copyRows(src.Pix, src.Stride, b, 1, expandGray)
	default:
		return genericRGBA8(img, b, w, h)
	}
}

// copyRows walks pix scanline by scanline according to stride and
// bounds, applying expand (if non-nil) to turn each source pixel's raw
// bytes into exactly 4 RGBA bytes. expand == nil means the source is
// already 4 bytes per pixel in RGBA order. As in the image package's own
// layout, pix[0] is the pixel at b.Min, so this stays correct for
// sub-images.
func copyRows(pix []byte, stride int, b image.Rectangle, bpp int, expand func(src, dst []byte)) []byte {
	w, h := b.Dx(), b.Dy()
	out := make([]byte, w*h*4)
	oi := 0
	for y := 0; y < h; y++ {
		srcOff := y * stride
		srcRow := pix[srcOff : srcOff+w*bpp]
		if expand == nil {
			copy(out[oi:oi+w*4], srcRow)
		} else {
			for x := 0; x < w; x++ {
				expand(srcRow[x*bpp:x*bpp+bpp], out[oi+x*4:oi+x*4+4])
			}
		}
		oi += w * 4
	}
	return out
}

func forceOpaque(src, dst []byte) {
	dst[0], dst[1], dst[2], dst[3] = src[0], src[1], src[2], 255
}

func expandGray(src, dst []byte) {
	v := src[0]
	dst[0], dst[1], dst[2], dst[3] = v, v, v, 255
}

// genericRGBA8 is the correct-for-anything fallback used for palette
// images, 16-bit images, and third-party decoder outputs (AVIF, JPEG
// 2000, JPEG XL) whose concrete type isn't special-cased above.
func genericRGBA8(img image.Image, b image.Rectangle, w, h int) []byte {
	out := make([]byte, w*h*4)
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			out[i], out[i+1], out[i+2], out[i+3] = c.R, c.G, c.B, c.A
			i += 4
		}
	}
	return out
}
