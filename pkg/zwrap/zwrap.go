// Package zwrap takes a file and, if it is compressed, wraps it so
// reads come from the decompressor and Close closes the decompressor
// followed by the underlying file. Histogram sources and observation
// files are often kept gzipped or zstd compressed.

package zwrap

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Suffixes are tried in this order by Open when the plain name is
// not there.
var Suffixes = []string{".gz", ".zst"}

type closer func() error

// Fp is what we return.
type Fp struct {
	rdr    io.Reader
	fp     io.Closer
	zclose closer // nil if not compressed
}

// Read makes sure we read from the decompressed stream if there is one.
func (fc *Fp) Read(p []byte) (int, error) { return fc.rdr.Read(p) }

// Close closes the decompressor, then the backing file.
func (fc *Fp) Close() error {
	var e1 error
	if fc.zclose != nil {
		e1 = fc.zclose()
	}
	return errors.Join(e1, fc.fp.Close())
}

// Wrap looks at the first bytes of rc and puts a decompressor in
// front if it recognises the magic number. Anything else is passed
// through untouched.
func Wrap(rc io.ReadCloser) (*Fp, error) {
	br := bufio.NewReader(rc)
	head, err := br.Peek(len(zstdMagic))
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, err
	}
	fpz := &Fp{rdr: br, fp: rc}
	switch {
	case bytes.HasPrefix(head, gzipMagic):
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, err
		}
		fpz.rdr, fpz.zclose = zr, zr.Close
	case bytes.HasPrefix(head, zstdMagic):
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, err
		}
		fpz.rdr = zr
		fpz.zclose = func() error { zr.Close(); return nil }
	}
	return fpz, nil
}

// Open opens name, or failing that name with one of the Suffixes, and
// wraps it. If none exist the error satisfies errors.Is(err,
// fs.ErrNotExist) and carries the plain name.
func Open(name string) (*Fp, error) {
	fp, err := os.Open(name)
	for i := 0; err != nil && errors.Is(err, fs.ErrNotExist) && i < len(Suffixes); i++ {
		var e2 error
		if fp, e2 = os.Open(name + Suffixes[i]); e2 == nil {
			err = nil
		} else if !errors.Is(e2, fs.ErrNotExist) {
			err = e2
		}
	}
	if err != nil {
		return nil, err
	}
	fpz, err := Wrap(fp)
	if err != nil {
		fp.Close()
		return nil, err
	}
	return fpz, nil
}

// Exists says if Open would find something for name.
func Exists(name string) bool {
	if _, err := os.Stat(name); err == nil {
		return true
	}
	for _, s := range Suffixes {
		if _, err := os.Stat(name + s); err == nil {
			return true
		}
	}
	return false
}
