// 10 Sep 2026

// Package table reads and writes the binary files holding a whole set
// of histograms of one kind. The layout is
//
//	float32 global mean
//	float32 global sd
//	n+1 header records, the last all zero
//	bit region, each histogram's counts compressed by package bitstream
//
// All numbers are little endian. Each record has the offset of its
// histogram in the bit region. The number of counts is not stored. It
// follows from the bin spacing, the kind and the residue name.
package table

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/andrew-torda/tortoize/pkg/bitstream"
	"github.com/andrew-torda/tortoize/pkg/histogram"
	"github.com/edsrzf/mmap-go"
)

// Names of the two tables
const (
	RamaName    = "rama-data.bin"
	TorsionName = "torsion-data.bin"
)

// FileName says what a table of kind k is called.
func FileName(k histogram.Kind) string {
	if k == histogram.Torsion {
		return TorsionName
	}
	return RamaName
}

// File is a set of histograms plus the global mean and sd used to
// turn a model's average Z-score into a model Z-score.
type File struct {
	Kind  histogram.Kind
	Mean  float32
	SD    float32
	Hists []*histogram.Histogram
}

// FormatError is the same error the source reader gives, with File
// set to the table's name.
type FormatError = histogram.FormatError

// MissingResourceError is returned when a table is not there at all.
type MissingResourceError struct {
	Name string
	Err  error
}

func (e *MissingResourceError) Error() string { return "Missing resource " + e.Name }
func (e *MissingResourceError) Unwrap() error { return e.Err }

// Encode returns the table in its file form.
func (f *File) Encode() []byte {
	hdr := make([]byte, globalSize+(len(f.Hists)+1)*RecordSize)
	putF32(hdr[0:], f.Mean)
	putF32(hdr[4:], f.SD)
	var bits []byte
	for i, h := range f.Hists {
		r := record{ss: h.SS(), st: h.Stats, offset: uint32(len(bits))}
		copy(r.aa[:], h.AA())
		r.put(hdr[globalSize+i*RecordSize:])

		w := bitstream.NewWriter(bits)
		bitstream.Compress(w, h.Counts())
		w.Sync()
		bits = w.Bytes()
	}
	return append(hdr, bits...) // sentinel is already zero
}

// WriteTo writes the encoded table to w.
func (f *File) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(f.Encode())
	return int64(n), err
}

func formatErr(name, desc string) error {
	return &FormatError{File: name, Desc: desc}
}

// Decode rebuilds a table from buf. name is only used in error
// messages. Nothing in the result points into buf.
func Decode(buf []byte, kind histogram.Kind, name string) (*File, error) {
	if len(buf) < globalSize+RecordSize {
		return nil, formatErr(name, fmt.Sprintf("table too short, %d bytes", len(buf)))
	}
	f := &File{Kind: kind, Mean: getF32(buf[0:]), SD: getF32(buf[4:])}
	if !(f.SD > 0) {
		return nil, formatErr(name, fmt.Sprintf("global sd %v is not positive", f.SD))
	}
	var recs []record
	for p := globalSize; ; p += RecordSize {
		if p+RecordSize > len(buf) {
			return nil, formatErr(name, "no end marker in header records")
		}
		r := getRecord(buf[p:])
		if r.sentinel() {
			break
		}
		recs = append(recs, r)
	}
	bits := buf[globalSize+(len(recs)+1)*RecordSize:]

	f.Hists = make([]*histogram.Histogram, 0, len(recs))
	for i, r := range recs {
		aa := string(r.aa[:])
		if _, err := histogram.BinsPerAxis(r.st.BinSpacing); err != nil {
			return nil, formatErr(name, fmt.Sprintf("record %d (%s): %v", i, aa, err))
		}
		if !(r.st.SD > 0) {
			return nil, formatErr(name, fmt.Sprintf("record %d (%s) has sd %v", i, aa, r.st.SD))
		}
		if int(r.offset) >= len(bits) {
			return nil, formatErr(name, fmt.Sprintf("record %d (%s) offset %d past end of data", i, aa, r.offset))
		}
		counts := make([]uint32, histogram.NBins(kind, aa, r.st.BinSpacing))
		if err := bitstream.Decompress(bitstream.NewReader(bits[r.offset:]), counts); err != nil {
			return nil, &FormatError{File: name,
				Desc: fmt.Sprintf("record %d (%s %s): %v", i, aa, r.ss, err)}
		}
		h, err := histogram.New(kind, aa, r.ss, r.st, counts)
		if err != nil {
			return nil, formatErr(name, err.Error())
		}
		f.Hists = append(f.Hists, h)
	}
	return f, nil
}

// Load maps the file at path and decodes it. A file which is not
// there gives a *MissingResourceError.
func Load(path string, kind histogram.Kind) (*File, error) {
	fp, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &MissingResourceError{Name: path, Err: err}
		}
		return nil, err
	}
	defer fp.Close()
	fi, err := fp.Stat()
	if err != nil {
		return nil, err
	}
	if fi.Size() == 0 { // cannot map an empty file
		return nil, formatErr(path, "empty table")
	}
	mm, err := mmap.Map(fp, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mapping %s: %w", path, err)
	}
	defer mm.Unmap()
	return Decode(mm, kind, path)
}

// Equal says if two tables hold the same numbers. Build uses it to
// check that a table reads back as it was written.
func Equal(a, b *File) bool {
	return bytes.Equal(a.Encode(), b.Encode())
}
