package brokenio_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/andrew-torda/tortoize/pkg/brokenio"
)

var longstring = "0123456789012345678901234567890123456789"

func TestCut(t *testing.T) {
	for _, n := range []int64{0, 1, 7, 39, 40, 100} {
		rdr := brokenio.NewReader(strings.NewReader(longstring))
		rdr.SetCutAfter(n)
		b, err := io.ReadAll(rdr)
		if err != nil {
			t.Fatal(err)
		}
		want := n
		if want > int64(len(longstring)) {
			want = int64(len(longstring))
		}
		if int64(len(b)) != want || string(b) != longstring[:want] {
			t.Errorf("cut %d got %q", n, b)
		}
	}
}

func TestFail(t *testing.T) {
	rdr := brokenio.NewReader(strings.NewReader(longstring))
	rdr.SetFailAfter(10)
	b, err := io.ReadAll(rdr)
	if !errors.Is(err, brokenio.ErrInjected) {
		t.Fatal("wanted injected error, got", err)
	}
	if string(b) != longstring[:10] {
		t.Error("got", string(b))
	}
}

func TestTrash(t *testing.T) {
	rdr := brokenio.NewReader(strings.NewReader(longstring))
	rdr.SetProbTrash(1)
	b, _ := io.ReadAll(rdr)
	if bytes.IndexByte(b, 0) < 0 {
		t.Error("nothing was trashed")
	}
	if err := rdr.Close(); err != nil {
		t.Error(err)
	}
}
