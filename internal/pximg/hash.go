package pximg

import "lukechampine.com/blake3"

// Hash computes the canonical 32-byte checksum of a PixelImage under the
// given strictness mode, per spec.md §4.4.
//
// In loose mode, on an image that may carry alpha, fully-transparent
// pixels have their color contribution erased before hashing (their
// position is preserved, their color is not). Strict mode hashes the
// buffer exactly as decoded. Either way the mode is stamped into bit 0
// of byte 0 of the digest afterward, so the same pixels hashed in both
// modes are guaranteed to disagree there.
func Hash(img *PixelImage, strict bool) [32]byte {
	pix := img.Pix
	if !strict && !img.NoAlpha {
		pix = neutralizeTransparent(pix)
	}

	digest := blake3.Sum256(pix)
	stamp(&digest, strict)
	return digest
}

// neutralizeTransparent returns a copy of pix with every fully
// transparent RGBA chunk overwritten by its own little-endian
// zero-based index, wrapping at 2^32 chunks.
func neutralizeTransparent(pix []byte) []byte {
	out := make([]byte, len(pix))
	copy(out, pix)

	for i := 0; i+4 <= len(out); i += 4 {
		if out[i+3] != 0 {
			continue
		}
		idx := uint32(i / 4)
		out[i] = byte(idx)
		out[i+1] = byte(idx >> 8)
		out[i+2] = byte(idx >> 16)
		out[i+3] = byte(idx >> 24)
	}
	return out
}

// stamp sets or clears bit 0 of byte 0 of digest to record the
// strictness mode the hash was produced under.
func stamp(digest *[32]byte, strict bool) {
	if strict {
		digest[0] |= 1
	} else {
		digest[0] &^= 1
	}
}
