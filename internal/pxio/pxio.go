// Package pxio loads image bytes from a file or standard input into a
// single in-memory buffer, priming enough of it up front for the
// format sniffer.
package pxio

import (
	"bytes"
	"io"
	"os"
	"sync"

	"golang.org/x/term"

	"github.com/blobfolio/pxsum/internal/pxerr"
	"github.com/blobfolio/pxsum/internal/pxkind"
)

// primeLen is the number of bytes read before the format sniffer runs:
// pxkind.MagicLen plus four. Files shorter than this are rejected.
const primeLen = pxkind.MagicLen + 4

var stdinOnce sync.Once

// Stdin claims the process's standard input, exactly once for the
// lifetime of the process. A second call, or a first call while stdin
// is an interactive terminal, returns a Stdin error.
func Stdin() (io.Reader, error) {
	firstCall := false
	stdinOnce.Do(func() { firstCall = true })
	if !firstCall {
		return nil, pxerr.New(pxerr.Stdin, "standard input was already consumed")
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, pxerr.New(pxerr.Stdin, "standard input is a terminal")
	}
	return os.Stdin, nil
}

// Read loads src fully into memory and returns its bytes along with
// the sniffed image kind. An empty src, or "-", reads from standard
// input instead of opening a file.
func Read(src string) ([]byte, pxkind.Kind, error) {
	if src == "" || src == "-" {
		r, err := Stdin()
		if err != nil {
			return nil, 0, err
		}
		return digest(r, 0)
	}

	f, err := os.Open(src)
	if err != nil {
		return nil, 0, pxerr.Wrap(pxerr.Read, "could not open source", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, 0, pxerr.Wrap(pxerr.Read, "could not stat source", err)
	}

	size := info.Size()
	switch {
	case size == 0:
		return nil, 0, pxerr.New(pxerr.NoData, "source is empty")
	case size < primeLen:
		return nil, 0, pxerr.New(pxerr.Decode, "source is smaller than the shortest recognized image header")
	}

	return digest(f, size)
}

// digest reads the priming bytes, sniffs the format, then reads the
// remainder of r into a single contiguous buffer. size is the known
// total length, or 0 if unknown (standard input).
func digest(r io.Reader, size int64) ([]byte, pxkind.Kind, error) {
	prime := make([]byte, primeLen)
	if _, err := io.ReadFull(r, prime); err != nil {
		return nil, 0, pxerr.Wrap(pxerr.Read, "could not read source header", err)
	}

	kind, err := pxkind.Sniff(prime)
	if err != nil {
		return nil, 0, err
	}

	var buf bytes.Buffer
	if size > primeLen {
		buf.Grow(int(size - primeLen))
	}
	buf.Write(prime)
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, 0, pxerr.Wrap(pxerr.Read, "could not read source to end", err)
	}

	return buf.Bytes(), kind, nil
}
