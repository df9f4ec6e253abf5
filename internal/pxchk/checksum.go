// Package pxchk implements the checksum record and the text-level
// transforms (path normalization, manifest line normalization) that
// feed it.
package pxchk

import (
	"encoding/hex"
	"strings"

	"github.com/blobfolio/pxsum/internal/pxerr"
	"github.com/blobfolio/pxsum/internal/pximg"
	"github.com/blobfolio/pxsum/internal/pxio"
)

// strictBit is bit 0 of byte 0 of a Hash: set when the checksum was
// produced in strict mode.
const strictBit = 0b0000_0001

// Checksum pairs a canonical path with its 32-byte image checksum.
type Checksum struct {
	// Path is the canonicalized source path, or "-" for standard
	// input. Empty means the record holds no result.
	Path string

	// Hash is the 32-byte digest, with the strictness bit stamped
	// into bit 0 of byte 0.
	Hash [32]byte
}

// Strict reports whether c.Hash was produced in strict mode.
func (c *Checksum) Strict() bool {
	return c.Hash[0]&strictBit == strictBit
}

// String renders the record in the same style as md5sum/b3sum: 64
// lowercase hex digits, two spaces, then the path. An empty Path
// renders as the empty string.
func (c *Checksum) String() string {
	if c.Path == "" {
		return ""
	}
	return hex.EncodeToString(c.Hash[:]) + "  " + c.Path
}

// Crunch replaces c with a freshly computed checksum for src, hashed
// in the given strictness mode.
func (c *Checksum) Crunch(src string, strict bool) error {
	c.Path = ""

	path, err := NormalizePath(src)
	if err != nil {
		return err
	}
	c.Path = path

	data, kind, err := pxio.Read(path)
	if err != nil {
		return err
	}
	img, err := pximg.Decode(data, kind)
	if err != nil {
		return err
	}
	c.Hash = pximg.Hash(img, strict)
	return nil
}

// Verify parses a "hash  path" manifest line into c, recomputes the
// checksum using the mode baked into the stored hash, and reports
// whether the two match.
func (c *Checksum) Verify(line string) (bool, error) {
	c.Path = ""

	if len(line) < 66 {
		return false, pxerr.New(pxerr.LineDecode, "line is too short")
	}
	hexPart, rest := line[:64], line[64:]
	if !strings.HasPrefix(rest, "  ") {
		return false, pxerr.New(pxerr.LineDecode, "missing separator after hash")
	}
	path := rest[2:]

	var want [32]byte
	if _, err := hex.Decode(want[:], []byte(hexPart)); err != nil {
		return false, pxerr.New(pxerr.LineDecode, "hash is not valid hex")
	}
	c.Hash = want
	strict := c.Strict()

	normPath, err := NormalizePath(path)
	if err != nil {
		return false, err
	}
	c.Path = normPath

	data, kind, err := pxio.Read(normPath)
	if err != nil {
		return false, err
	}
	img, err := pximg.Decode(data, kind)
	if err != nil {
		return false, err
	}

	got := pximg.Hash(img, strict)
	return got == want, nil
}
