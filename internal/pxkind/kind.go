// Package pxkind classifies raster image bytes into a fixed set of known
// formats by inspecting their leading magic bytes.
//
// Detection never touches the filesystem and never requires more than the
// first 12 bytes of a stream.
package pxkind

// Kind tags one of the ten image formats pxsum knows how to decode. Each
// alternative is a pure tag with no payload.
type Kind int

const (
	// Avif is the AV1 Image File Format.
	Avif Kind = iota
	// Bmp is the Windows bitmap format.
	Bmp
	// Gif is the Graphics Interchange Format.
	Gif
	// Ico is the Windows icon container format.
	Ico
	// Jpeg is the JPEG format (ISO/IEC 10918-1).
	Jpeg
	// Jpeg2000 is the JPEG 2000 format (ISO/IEC 15444-1).
	Jpeg2000
	// JpegXl is the JPEG XL format (ISO/IEC 18181).
	JpegXl
	// Png is the Portable Network Graphics format.
	Png
	// Tiff is the Tagged Image File Format, either byte order.
	Tiff
	// WebP is the WebP format (RIFF container, VP8/VP8L/VP8X payload).
	WebP
)

// String renders a Kind's canonical name.
func (k Kind) String() string {
	switch k {
	case Avif:
		return "avif"
	case Bmp:
		return "bmp"
	case Gif:
		return "gif"
	case Ico:
		return "ico"
	case Jpeg:
		return "jpeg"
	case Jpeg2000:
		return "jpeg2000"
	case JpegXl:
		return "jpegxl"
	case Png:
		return "png"
	case Tiff:
		return "tiff"
	case WebP:
		return "webp"
	default:
		return "unknown"
	}
}
