// 3 Sep 2026

package bitstream_test

import (
	"math/rand"
	"testing"

	. "github.com/andrew-torda/tortoize/pkg/bitstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRead(t *testing.T) {
	assert := assert.New(t)
	w := NewWriter(nil)
	w.Write(0x5, 3)
	w.WriteBit(true)
	w.Write(0xABCDE, 20)
	w.Sync()
	r := NewReader(w.Bytes())
	for _, tst := range []struct {
		nbits int
		want  uint32
	}{{3, 5}, {1, 1}, {20, 0xABCDE}, {1, 0}} {
		v, err := r.Read(tst.nbits)
		require.NoError(t, err)
		assert.Equal(tst.want, v)
	}
}

func TestSync(t *testing.T) {
	w := NewWriter(nil)
	w.Write(1, 1)
	w.Sync()
	// 1, then 0, then six ones, then the new open byte
	assert.Equal(t, []byte{0xBF, 0x00}, w.Bytes())
}

// TestKnownBytes pins the selector choices. Four zeros go out as
// selector 1 (width 4), selector 1 (width 0), then selector 8 for the
// last pair.
func TestKnownBytes(t *testing.T) {
	got := Encode([]uint32{0, 0, 0, 0})
	assert.Equal(t, []byte{0x10, 0x18, 0x7F, 0x00}, got)
}

func TestEmpty(t *testing.T) {
	b := Encode(nil)
	out, err := Decode(b, 0)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestShortData(t *testing.T) {
	r := NewReader([]byte{0xFF})
	_, err := r.Read(8)
	require.NoError(t, err)
	_, err = r.Read(1)
	assert.ErrorIs(t, err, ErrShortData)

	_, err = Decode([]byte{0x10}, 100)
	assert.ErrorIs(t, err, ErrShortData)
}

// randVals gives values with a spread of bit widths, runs of zeros
// and the odd large one, a bit like a histogram.
func randVals(rng *rand.Rand, n int) []uint32 {
	v := make([]uint32, n)
	for i := range v {
		switch rng.Intn(5) {
		case 0:
			v[i] = 0
		case 1:
			v[i] = uint32(rng.Intn(16))
		case 2:
			v[i] = uint32(rng.Intn(1 << 10))
		case 3:
			v[i] = uint32(rng.Intn(1 << MaxWidth))
		default:
			if i > 0 {
				v[i] = v[i-1]
			}
		}
	}
	return v
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	lengths := []int{1, 2, 3, 4, 5, 7, 120, 14400}
	for _, n := range lengths {
		vals := randVals(rng, n)
		b := Encode(vals)
		got, err := Decode(b, n)
		require.NoError(t, err, "length %d", n)
		assert.Equal(t, vals, got, "length %d", n)
	}
	maxv := []uint32{1<<MaxWidth - 1, 0, 1<<MaxWidth - 1, 1, 2, 3}
	got, err := Decode(Encode(maxv), len(maxv))
	require.NoError(t, err)
	assert.Equal(t, maxv, got)
}

// TestShared puts several arrays in one buffer the way the table
// writer does and reads each back from its own offset.
func TestShared(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	var buf []byte
	var offsets []int
	var arrays [][]uint32
	for i := 0; i < 6; i++ {
		vals := randVals(rng, 50+i*13)
		offsets = append(offsets, len(buf))
		w := NewWriter(buf)
		Compress(w, vals)
		w.Sync()
		buf = w.Bytes()
		arrays = append(arrays, vals)
	}
	for i, vals := range arrays {
		got, err := Decode(buf[offsets[i]:], len(vals))
		require.NoError(t, err)
		assert.Equal(t, vals, got)
	}
}

func BenchmarkEncode(b *testing.B) {
	vals := randVals(rand.New(rand.NewSource(3)), 14400)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Encode(vals)
	}
}

func BenchmarkDecode(b *testing.B) {
	vals := randVals(rand.New(rand.NewSource(3)), 14400)
	buf := Encode(vals)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Decode(buf, len(vals)); err != nil {
			b.Fatal(err)
		}
	}
}
