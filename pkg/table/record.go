// 10 Sep 2026

package table

import (
	"encoding/binary"
	"math"

	"github.com/andrew-torda/tortoize/pkg/histogram"
)

// RecordSize is the size of one header record on disk.
// 3 bytes residue name, 1 byte class tag, five float32's and a uint32
// offset into the bit region.
const RecordSize = 28

// globalSize is the two float32's at the start of the file.
const globalSize = 8

// record is the fixed header stored for each histogram.
type record struct {
	aa     [3]byte
	ss     histogram.SecStr
	st     histogram.Stats
	offset uint32
}

var le = binary.LittleEndian

func putF32(b []byte, f float32) { le.PutUint32(b, math.Float32bits(f)) }
func getF32(b []byte) float32    { return math.Float32frombits(le.Uint32(b)) }

// put writes r into b, which must be RecordSize long. The order of the
// floats is mean, mean vs random, sd, sd vs random, bin spacing.
func (r *record) put(b []byte) {
	copy(b[0:3], r.aa[:])
	b[3] = byte(r.ss)
	putF32(b[4:], r.st.Mean)
	putF32(b[8:], r.st.MeanVsRandom)
	putF32(b[12:], r.st.SD)
	putF32(b[16:], r.st.SDVsRandom)
	putF32(b[20:], r.st.BinSpacing)
	le.PutUint32(b[24:], r.offset)
}

func getRecord(b []byte) (r record) {
	copy(r.aa[:], b[0:3])
	r.ss = histogram.SecStr(b[3])
	r.st.Mean = getF32(b[4:])
	r.st.MeanVsRandom = getF32(b[8:])
	r.st.SD = getF32(b[12:])
	r.st.SDVsRandom = getF32(b[16:])
	r.st.BinSpacing = getF32(b[20:])
	r.offset = le.Uint32(b[24:])
	return r
}

// sentinel is the record that ends the list. Only the first byte of
// the name is looked at.
func (r *record) sentinel() bool { return r.aa[0] == 0 }
